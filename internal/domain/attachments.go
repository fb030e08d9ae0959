package domain

import "encoding/json"

// AssetReference is one photograph stored in the remote blob store.
// Only the locator (the store's public URL) is ever persisted; the store's
// own identifier is re-derived from it when cleanup needs it.
type AssetReference struct {
	Locator string
}

// AttachmentSet is the ordered photo references of one record.
// Insertion order is display order; duplicates are permitted.
type AttachmentSet []AssetReference

// NewAttachmentSet builds a set from locator strings, preserving order.
func NewAttachmentSet(locators ...string) AttachmentSet {
	set := make(AttachmentSet, 0, len(locators))
	for _, l := range locators {
		set = append(set, AssetReference{Locator: l})
	}
	return set
}

// DecodeAttachments parses the persisted photos column (a JSON array of URL
// strings). Legacy rows hold null, plain text or non-array JSON; all of
// those decode to an empty set instead of failing the read path.
func DecodeAttachments(raw string) AttachmentSet {
	if raw == "" {
		return AttachmentSet{}
	}
	var locators []string
	if err := json.Unmarshal([]byte(raw), &locators); err != nil {
		return AttachmentSet{}
	}
	return NewAttachmentSet(locators...)
}

// Encode serializes the set for persistence. An empty set encodes to "[]",
// never to null, so the column always holds a JSON array.
func (s AttachmentSet) Encode() string {
	data, err := json.Marshal(s.Locators())
	if err != nil {
		// Locators are URL strings, marshalling them cannot fail.
		return "[]"
	}
	return string(data)
}

// Locators returns the locator of each reference in order.
func (s AttachmentSet) Locators() []string {
	locators := make([]string, 0, len(s))
	for _, ref := range s {
		locators = append(locators, ref.Locator)
	}
	return locators
}

// Diff returns the references present in s but absent from newer, compared
// by locator. During an update these are the orphans eligible for cleanup.
func (s AttachmentSet) Diff(newer AttachmentSet) AttachmentSet {
	kept := make(map[string]bool, len(newer))
	for _, ref := range newer {
		kept[ref.Locator] = true
	}
	var orphans AttachmentSet
	for _, ref := range s {
		if !kept[ref.Locator] {
			orphans = append(orphans, ref)
		}
	}
	return orphans
}
