package git

// Snapshot identifies the commit a project was read from
type Snapshot struct {
	URL        string `json:"url"`
	LocalPath  string `json:"local_path,omitempty"`
	Ref        string `json:"ref"`
	CommitHash string `json:"commit_hash"`
	ShortHash  string `json:"short_hash"` // First 8 chars for display
	HeadBranch string `json:"head_branch,omitempty"`
}
