// Package geo is the geometry kernel used by every trajectory simplifier.
//
// All functions take latitude and longitude in radians. Distances are
// returned in the unit of the radius that was passed in (meters when using
// EarthRadiusMeters).
//
// The package offers two earth models behind the Kernel interface:
//   - Sphere: closed-form great-circle formulas
//   - Ellipsoid: two-point problems delegated to an injected Geodesy back-end,
//     with an iterative point-to-geodesic search built on top of it
package geo
