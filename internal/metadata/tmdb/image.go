package tmdb

const imageBaseURL = "https://image.tmdb.org/t/p/"

// Image size tokens.
const (
	SizeRow      = "w342"  // standard catalog rows
	SizePoster   = "w500"  // large rows, search grid, chat photos
	SizeBackdrop = "w1280" // hero banner
)

// ImageURL returns the full URL for an image path at the given size.
func ImageURL(path, size string) string {
	if path == "" {
		return ""
	}
	return imageBaseURL + size + path
}

// BackdropURL returns the full URL for a backdrop at banner size.
func BackdropURL(path string) string {
	return ImageURL(path, SizeBackdrop)
}
