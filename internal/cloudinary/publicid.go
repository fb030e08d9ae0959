package cloudinary

import "strings"

// ExtractPublicID recovers the store identifier from a delivery URL, the
// only form persisted with records. Delivery URLs look like
// .../upload/<version>/<public_id>.<ext>; older assets may lack the upload
// segment, in which case the last path segment is used. Returns ok=false
// for a string with no path separators at all.
//
// Must stay pure and total: it runs during delete reconciliation where a
// failure must not block the metadata mutation.
func ExtractPublicID(locator string) (string, bool) {
	if locator == "" || !strings.Contains(locator, "/") {
		return "", false
	}

	segments := strings.Split(locator, "/")
	segment := segments[len(segments)-1]
	for i, s := range segments[:len(segments)-1] {
		if s == "upload" && i+2 < len(segments) {
			segment = segments[i+2]
			break
		}
	}

	if dot := strings.Index(segment, "."); dot >= 0 {
		segment = segment[:dot]
	}
	if segment == "" {
		return "", false
	}
	return segment, true
}
