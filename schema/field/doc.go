// Package field declares the closed set of column kinds understood by the
// generator and the type tables derived from them.
//
// A kind is declared by name in a definition file:
//
//	fields:
//	  productID:   { type: id, isID: true }
//	  name:        { type: text, isUnique: true }
//	  price:       { type: price }
//	  createdTime: { type: date }
//
// # Type Tables
//
// Every kind maps to exactly one Go scalar type and default literal:
//
//	boolean                  bool     false
//	id, number, date         int      0
//	float, price             float64  0.0
//	json                     any      []any{}
//	csv, html, file, text    string   ""
//
// # Attribute Expansion
//
// Some kinds expand into more than one entity attribute. A date field X
// yields X, XDate and XFull; a csv field yields X, XParts and XCount; an
// html field yields X and XHtml; a file field yields X, XUrl and XThumb.
// See Kind.Attributes.
package field
