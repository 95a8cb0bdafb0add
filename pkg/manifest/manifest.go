package manifest

// CrawlReport summarizes one crawl: the run totals, the pages that failed
// and the most frequent words of the store once the crawl ended.
type CrawlReport struct {
	GeneratedAt    string       `json:"generated_at" yaml:"generated_at"`
	RunID          int64        `json:"run_id,omitempty" yaml:"run_id,omitempty"`
	Seed           string       `json:"seed" yaml:"seed"`
	MaxDepth       int          `json:"max_depth" yaml:"max_depth"`
	Wait           string       `json:"wait" yaml:"wait"`
	Status         string       `json:"status" yaml:"status"` // "completed" or "stopped"
	Error          string       `json:"error,omitempty" yaml:"error,omitempty"`
	Duration       string       `json:"duration" yaml:"duration"`
	Processed      int          `json:"processed" yaml:"processed"`
	Failed         int          `json:"failed" yaml:"failed"`
	Skipped        int          `json:"skipped" yaml:"skipped"`
	WordsMerged    int          `json:"words_merged" yaml:"words_merged"`
	StorePath      string       `json:"store_path" yaml:"store_path"`
	StoreSizeBytes int64        `json:"store_size_bytes,omitempty" yaml:"store_size_bytes,omitempty"`
	DistinctWords  int          `json:"distinct_words" yaml:"distinct_words"`
	TotalWords     int          `json:"total_words" yaml:"total_words"`
	TopWords       []string     `json:"top_words" yaml:"top_words"`
	Failures       []FailedPage `json:"failures,omitempty" yaml:"failures,omitempty"`
}

// FailedPage is a page the crawler could not fetch or parse.
type FailedPage struct {
	Page       string `json:"page" yaml:"page"`
	Depth      int    `json:"depth" yaml:"depth"`
	StatusCode int    `json:"status_code,omitempty" yaml:"status_code,omitempty"`
	Error      string `json:"error" yaml:"error"`
}
