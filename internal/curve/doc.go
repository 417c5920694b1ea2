// Package curve reads risk-free rate term structures out of the published
// EIOPA workbooks and carries the result to the presentation layer.
//
// A release is identified by a DateKey, the canonical yyyymmdd token for the
// month-end the curve was published for. ReadSpotRange extracts the spot
// curve from the fixed range the regulator uses (column C starting at row 11
// on the RFR_spot_no_VA sheet), and Selection bundles the extracted series
// with its display label and source file for rendering.
package curve
