// Package wordcloud lays out weighted text labels as a dense, non-overlapping
// word cloud.
//
// # Overview
//
// [Layout] takes a list of [Item] values (text plus weight), a canvas size and
// a [Measurer], and returns the labels it managed to place. Each label gets a
// font size from a power-law scale over the weights, and a center position
// found by walking an Archimedean spiral outward from the canvas center.
// Heavier labels are placed first, so they claim the uncontested space in the
// middle.
//
// # Algorithm
//
//  1. Size: a power scale maps [0, maxWeight] onto [MinFont, MaxFont]; the
//     result is rounded and floored at FloorFont.
//  2. Order: labels are stably sorted by descending font size.
//  3. Place: for each label, try its size and then progressively smaller
//     sizes. At each size, walk the spiral until a candidate rectangle is in
//     bounds and clear of every placed rectangle, then nudge it toward the
//     center one step at a time while it stays valid.
//  4. Compact: a bounded number of passes nudge every placed label toward the
//     center again, now that all neighbours are known.
//
// Labels that fit at no size are dropped. That is a normal outcome on crowded
// canvases and is reported through [Result.Dropped], never as an error.
//
// # Guarantees
//
//   - No two placed rectangles (measured box plus padding) intersect.
//   - Every placed rectangle lies inside [0, width] x [0, height].
//   - A placed label's font size never exceeds its assigned size.
//   - Layout always terminates: the spiral walk, the nudge loop and the
//     compaction passes are all capped by [Config].
//
// Text is always horizontal, so every collision test is an axis-aligned
// rectangle intersection.
//
// # Measurement
//
// The engine does not know about fonts. Text extents come from a
// [measure.Measurer]; see package measure for a font-backed implementation, a
// deterministic estimate, and a caching wrapper.
//
// # Concurrency
//
// A Layout call is synchronous and owns all of its state. Separate calls may
// run concurrently as long as the Measurer they share is safe for concurrent
// use.
package wordcloud
