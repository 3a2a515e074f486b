// Package bgcraft is a visual configurator for animated background effects,
// built on [Ebitengine].
//
// Bgcraft owns a drawing [Surface], a registry of effect plugins, and a
// [Builder] that orchestrates the lifecycle of the one live effect instance:
// selection, option validation and coercion, live updates, resizing, and
// teardown. Effects implement the [Effect] interface and are described to the
// builder by a [Descriptor] carrying defaults and a [ControlSpec] schema from
// which the control panel is generated.
//
// # Quick start
//
// Register effects, select one, and drive the builder from your game loop:
//
//	surface := bgcraft.NewSurface(800, 600)
//	b := bgcraft.NewBuilder(surface, bgcraft.DiscardLogger())
//	for _, d := range effects.Descriptors() {
//		if err := b.Register(d); err != nil {
//			log.Fatal(err)
//		}
//	}
//	b.Select("Starfield", nil)
//
//	// each frame:
//	b.Advance(1.0 / 60.0)
//	screen.DrawImage(surface.Image(), nil)
//
// # Options and controls
//
// Each effect exposes an [Options] set validated against its schema at
// registration time. [Builder.UpdateOption] coerces raw control input
// (clamping, integer vs fractional rounding, comma-list splitting) and either
// pushes the change into the live instance or restarts it, depending on the
// spec's RequiresRestart flag. [BuildControls] turns a schema plus the current
// options into renderable control models.
//
// # Persistence and export
//
// [Store] persists the last selected effect and per-effect options to a YAML
// state file. [GenerateSnippet] assembles a self-contained Go source snippet
// from an effect's embedded source and the non-default subset of its options;
// see [CopySnippet] and [HighlightSnippet].
//
// [Ebitengine]: https://ebitengine.org
package bgcraft
