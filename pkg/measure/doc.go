// Package measure provides physical sizes tagged with a unit and their
// conversion to render space.
//
// Render space is expressed in pixels. The conversion uses a single
// process-wide scale, [PixelsPerInch], which defaults to 200 pixels per
// inch. Shapes that have to be centred on an integer coordinate use
// [NearestOdd] to pick an odd pixel extent.
//
//	s := measure.NewSize(0.07, measure.Inch)
//	px := measure.NearestOdd(s.PixelsInt()) // 15 at the default scale
//
// Sizes can be read from text with [ParseSize], e.g. "0.07in" or "0.5 mm".
package measure
