// Package chart renders dashboard chart specs to PNG or SVG images.
//
// Drawing is delegated to go-chart. This package only maps a PieSpec to a
// donut chart and a ScatterSpec to one dot series per booster category,
// and takes care of the inputs go-chart cannot draw on its own: an empty
// pie and a scatter with fewer than two distinct payloads.
package chart
