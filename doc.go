// Package survivalmaze is a small real-time 3D maze game built on [Ebitengine].
//
// The player walks a procedurally generated maze, shoots projectiles at the
// enemies wandering inside it, and has to reach the exit before the time
// limit runs out. The package owns the simulation core; drawing goes through
// the [Renderer] interface so any backend that can submit instanced draws can
// present a frame.
//
// # Quick start
//
//	cfg := survivalmaze.DefaultConfig()
//	game, err := survivalmaze.NewGame(cfg, survivalmaze.DefaultMeshes())
//	if err != nil {
//		log.Fatal(err)
//	}
//	survivalmaze.Run(game, survivalmaze.RunConfig{Title: "Survival Maze", Width: 1280, Height: 720})
//
// For full control, drive [Game.Update] and [Game.Draw] yourself:
//
//	game.Update(input, dt)
//	game.Draw(renderer)
//
// # Meshes and instances
//
// Every piece of geometry is a [Mesh]. A mesh owns a growable registry of
// [InstanceInfo] records addressed by integer handle. Each frame the registry
// is reset and entities re-mark the instances they want drawn, then one
// instanced draw is submitted per mesh.
//
// # Composite models
//
// [CompositeNode] trees pair a fixed rest transform ("from parent") with a
// per-frame animation transform. The player skeleton is one such tree:
//
//	torso, _ := survivalmaze.NewCompositeNode("torso", mesh, color, mgl32.Ident4(), mgl32.Ident4())
//	head := torso.AddChild("head", skin, mgl32.Ident4(), mgl32.Ident4())
//	head.TranslateFromParent(0, 1.6, 0)
//	torso.UpdateBoundingBox(mgl32.Ident4())
//	torso.Render(world)
//
// # Frame order
//
// Input, player movement (tested against the maze walls), animation,
// projectiles, enemies, then instance repopulation and batched submission.
// Everything runs on the game loop goroutine; nothing in the package locks.
//
// # Scripted input
//
// [LoadInputScript] reads a JSON list of steps (hold, press, mouse, wait,
// screenshot). [Run] plays it before the devices take over, and
// [InputScript.Play] drives a [Game] headlessly:
//
//	script, _ := survivalmaze.LoadInputScript(data)
//	frames := script.Play(game, 1.0/60)
//
// [Ebitengine]: https://ebitengine.org
package survivalmaze
