// Package imageview is a small gg demo: an image, two lines of text, a
// looping sound and a field of "crazy lines" redrawn every frame.
//
// # Overview
//
// The interesting parts live in this package:
//
//   - Oscillator: a bounded triangle-wave counter stepped at a fixed tick
//     rate; its value is the brightness of the image and headline.
//   - Generate: a seeded PCG32 random walk producing coloured line segments.
//   - Scene: ties both to a Clock, a Loader, an AudioPlayer and a Renderer.
//
// Everything that talks to a window, a GPU, a font shaper or an audio device
// sits behind the Renderer, Loader, AudioPlayer and Clock interfaces and is
// implemented under internal/ on top of gg, gogpu and ebiten's audio package.
//
// # Quick Start
//
// The Clock interface only consumes ticks; advancing time is up to the
// concrete clock, such as the one in internal/timer:
//
//	scene, err := imageview.NewScene(imageview.DefaultSceneConfig(), loader, player)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	clock := timer.New()
//	for {
//	    clock.Tick() // *timer.Clock, not part of imageview.Clock
//	    scene.Update(clock)
//	    if err := scene.Draw(renderer); err != nil {
//	        log.Fatal(err)
//	    }
//	}
//
// # Determinism
//
// For a fixed seed the sequence of crazy lines is bit-reproducible: the
// stream is explicitly owned by the Scene and never reseeded, and offsets use
// Go's truncated signed remainder, so negative draws keep their bias toward
// zero.
//
// # Coordinate System
//
// Same as gg: origin at top-left, X grows right, Y grows down.
package imageview

// Version is the current version of imageview.
const Version = "0.3.0"
