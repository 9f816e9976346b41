// Package soundtracker is the Composition Root for the soundtracker application.
//
// It connects the selection and aggregation engine (Domain Layer) with the
// storage adapters (Persistence Layer) using the Hexagonal Architecture pattern.
//
// Philosophy:
//
// A music project is a list of sounds. Each sound is tagged along four
// independent axes (frequency band, stereo presence, depth and shape) and the
// engine keeps live counts per value, so arrangement crowding shows up at a
// glance. The core is agnostic of where the snapshot lives.
//
// Features:
//
//   - **Hexagonal Architecture**: Core domain is isolated from persistence details.
//   - **Pure Transitions**: Every mutation is a function from state to state.
//   - **Portable Export**: A versioned JSON document with validating, confirmable import.
//   - **Default Adapter (FS)**: A single JSON slot under `.soundtracker/`, written atomically.
//   - **Live Totals**: fsnotify-driven reloads when another process edits the slot.
//   - **Extensible**: SQLite and in-memory adapters ship alongside; anything
//     implementing `core.Repository` plugs in.
//
// Usage:
//
//	svc, err := soundtracker.New("./my-song",
//		soundtracker.WithLogger(logger),
//	)
//
//	row, ok := svc.Add(ctx, "bass")
//	_, err = svc.Toggle(ctx, row.RowID, core.AxisFrequency, "high")
//	totals := svc.Totals()
package soundtracker
