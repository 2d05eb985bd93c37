// Package specsheet turns a flat block of product specification text into a
// categorized table and renders it as HTML for product listing pages.
//
// Input is line oriented. A line holding a separator is a row:
//
//	Screen Size: 55 inch
//	Refresh Rate = 120 Hz
//	HDMI Ports<TAB>3
//
// Lines are trimmed first, so rows indented under their heading parse the
// same as flush ones. A non-empty line with no separator starts a new
// category and later rows are filed under it. Rows before the first category go to "General". Blank
// lines are ignored and categories that end up with no rows are dropped.
//
// Text can also come from a screenshot of a spec sheet via FromImage, which
// runs OCR first, or FromRegion when only part of a product page holds the
// table.
package specsheet
