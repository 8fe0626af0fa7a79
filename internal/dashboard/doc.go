// Package dashboard binds the launch record store to the two dashboard
// charts.
//
// A Dashboard owns the Record Store and knows how to compute each chart for
// a given input state. NewLoop wires those computations into reactive cells:
// the pie cell reads the site dropdown, the scatter cell reads the dropdown
// and the payload slider. The package also validates raw user input and
// describes the page layout served to the browser.
package dashboard
