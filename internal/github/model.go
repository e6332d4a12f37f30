package github

// Repository identifies a hosted repository and the ref files are read at
type Repository struct {
	Owner         string `json:"owner"`
	Name          string `json:"name"`
	Ref           string `json:"ref"`
	DefaultBranch string `json:"default_branch,omitempty"`
	HTMLURL       string `json:"html_url,omitempty"`
}

// TreeEntry is a file in a repository tree listing
type TreeEntry struct {
	Path string `json:"path"`
	SHA  string `json:"sha"`
	Size int    `json:"size"`
}
