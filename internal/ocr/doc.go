// Package ocr reads text from product spec-sheet images using Tesseract.
//
// This package wraps the Tesseract OCR engine (via gosseract/v2). Retailers
// often supply specifications as screenshots or scanned labels; the text
// extracted here is fed to the specsheet parser.
//
// # Prerequisites
//
// Tesseract must be installed on the system:
//   - Ubuntu/Debian: apt-get install tesseract-ocr libtesseract-dev
//   - macOS: brew install tesseract
//
// Language data files are required for each language:
//   - Ubuntu/Debian: apt-get install tesseract-ocr-eng (for English)
//   - Other languages: tesseract-ocr-<lang> packages
//
// The default language is English ("eng"). Spec sheets from Chinese suppliers
// usually need "chi_sim" as well, e.g. "eng+chi_sim".
//
// # Functions
//
//   - ExtractText: OCR of an image file
//   - ExtractTextFromImage: OCR of an already decoded image
//   - ExtractTextFromRegion: OCR of a rectangle, bounds mapped back to the image
//
// # Error Handling
//
// Functions return errors for missing or invalid images, unsupported language
// codes and Tesseract initialization failures. If bounding box extraction
// fails, the text is still returned with an empty Regions slice.
package ocr
