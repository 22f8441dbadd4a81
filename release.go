package releases

import (
	"context"
	"strings"
)

const (
	ProductEnterprise = "enterprise"
	ProductForwarder  = "forwarder"
)

// Single downloadable Splunk artifact scraped from a download page.
type Release struct {
	Platform string `json:"platform"`
	Arch     string `json:"arch"`
	Version  string `json:"version"`
	Filetype string `json:"filetype"`
	Product  string `json:"product"`
	Filename string `json:"filename"`
	// Fully qualified artifact url.
	Link string `json:"link"`
	// Url of the md5 checksum file (not the checksum itself).
	MD5 string `json:"md5"`
	// Url of the sha512 checksum file.
	SHA512 string `json:"sha512"`
}

// FiletypeOf returns the text after the last dot of filename.
func FiletypeOf(filename string) string {
	return filename[strings.LastIndex(filename, ".")+1:]
}

type Field string

const (
	FieldPlatform Field = "platform"
	FieldArch     Field = "arch"
	FieldVersion  Field = "version"
	FieldFiletype Field = "filetype"
	FieldProduct  Field = "product"
	FieldFilename Field = "filename"
	FieldLink     Field = "link"
	FieldMD5      Field = "md5"
	FieldSHA512   Field = "sha512"
)

// Fields allowed in projections, in the order they are reported to clients.
var AllowedFields = []Field{
	FieldArch, FieldLink, FieldFilename, FieldFiletype, FieldMD5,
	FieldPlatform, FieldSHA512, FieldVersion, FieldProduct,
}

func IsAllowedField(name string) bool {
	for _, f := range AllowedFields {
		if string(f) == name {
			return true
		}
	}
	return false
}

// Value returns the release value of field and whether the field exists.
func (r Release) Value(field Field) (string, bool) {
	switch field {
	case FieldPlatform:
		return r.Platform, true
	case FieldArch:
		return r.Arch, true
	case FieldVersion:
		return r.Version, true
	case FieldFiletype:
		return r.Filetype, true
	case FieldProduct:
		return r.Product, true
	case FieldFilename:
		return r.Filename, true
	case FieldLink:
		return r.Link, true
	case FieldMD5:
		return r.MD5, true
	case FieldSHA512:
		return r.SHA512, true
	default:
		return "", false
	}
}

// Catalog is the ordered list of all scraped releases.
type Catalog []Release

type CatalogSource interface {
	// Scrape every download page and build a fresh catalog.
	Build(ctx context.Context) (Catalog, error)
}

type CatalogStore interface {
	// Get the current catalog snapshot, building it when missing or when force is set.
	Catalog(ctx context.Context, force bool) (Snapshot, error)
}

// Snapshot is a catalog together with the id of the build that produced it.
type Snapshot struct {
	Id       string
	Releases Catalog
}
