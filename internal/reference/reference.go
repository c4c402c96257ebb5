// Package reference defines the core domain types for Zotero references.
package reference

// DefaultTitle is used when the source item has no title.
const DefaultTitle = "Untitled"

// Reference represents one bibliographic item loaded from the Zotero database.
type Reference struct {
	// ItemID is the numeric ID from the source database. It is only
	// meaningful within a single load (used as the join key between the
	// items and creators queries) and is not stable across syncs.
	ItemID int64 `json:"item_id"`

	// Key is the stable alphanumeric Zotero item key, unique within a load.
	Key string `json:"key"`

	Title          string `json:"title"`
	Year           string `json:"year"`            // 4-digit year, "" if unknown
	AuthorsDisplay string `json:"authors_display"` // "", "Last", "A & B", or "A et al."
	Publication    string `json:"publication"`     // journal/book/publisher fallback chain
	Type           string `json:"type"`            // Zotero item type name
	URL            string `json:"url,omitempty"`
	Abstract       string `json:"abstract,omitempty"`

	// Extra holds the parsed Key: Value pairs from the item's free-form
	// "Extra" field. Keys are lowercase with all whitespace removed.
	Extra map[string]string `json:"extra,omitempty"`
}

// Author represents one creator of an item.
type Author struct {
	Last  string `json:"last"`
	First string `json:"first"`
}

// DeepLink returns the zotero:// select URI built from an item key.
func DeepLink(key string) string {
	return "zotero://select/library/items/" + key
}

// DeepLink returns the select URI for this reference.
func (r *Reference) DeepLink() string {
	return DeepLink(r.Key)
}

// extraValue returns a promoted Extra key, or "" when absent.
func (r *Reference) extraValue(key string) string {
	if r.Extra == nil {
		return ""
	}
	return r.Extra[key]
}

// Abbreviation returns the "abbreviation" Extra key (journal abbreviation).
func (r *Reference) Abbreviation() string { return r.extraValue("abbreviation") }

// Organization returns the "organization" Extra key.
func (r *Reference) Organization() string { return r.extraValue("organization") }

// EventShort returns the "eventshort" Extra key (short conference name).
func (r *Reference) EventShort() string { return r.extraValue("eventshort") }
