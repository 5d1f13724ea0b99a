// Package warpfx renders a row of textured planes through an animated
// domain-warp post-process, on top of [Ebitengine].
//
// # Quick start
//
// [NewApp] builds everything from a [Config] and a list of textures, and
// [Run] opens the window:
//
//	cfg := warpfx.DefaultConfig()
//	textures := warpfx.GenerateTextures(3, 512, 512)
//	app, err := warpfx.NewApp(cfg, textures)
//	if err != nil {
//		log.Fatal(err)
//	}
//	if err := warpfx.Run(app, warpfx.RunConfigFrom(cfg)); err != nil {
//		log.Fatal(err)
//	}
//
// # Scene
//
// A [Scene] holds a tree of [Node] values and a perspective [Camera].
// [BuildQuads] adds one quad per texture, spaced one world unit apart and
// centered on the origin. Every quad owns a [Material] cloned from a shared
// template, so uniforms and textures are per quad while the compiled
// [Program] is shared.
//
// # Animation
//
// [Loop.Tick] advances the frame clock by a fixed step, writes it into
// every material and the [DistortionFilter], and moves each quad to
// Z = progress*π/2. Effect parameters live in a [ParamSource]; writers
// replace the whole [Params] snapshot. A paused loop leaves everything
// untouched.
//
// # Composition
//
// A [Composer] runs a fixed list of passes: a [RenderPass] draws the scene
// offscreen, then one or more [ShaderPass] values filter it. The last pass
// draws to the screen. [Warp] is the Go form of the distortion shader's
// coordinate math.
//
// [Ebitengine]: https://ebitengine.org
package warpfx
