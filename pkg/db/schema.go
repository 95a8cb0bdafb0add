package db

const schema = `
PRAGMA journal_mode = WAL;
PRAGMA synchronous = NORMAL;
PRAGMA foreign_keys = ON;
PRAGMA temp_store = MEMORY;

-- One row per crawl invocation
CREATE TABLE IF NOT EXISTS crawl_runs (
    run_id INTEGER PRIMARY KEY AUTOINCREMENT,
    seed TEXT NOT NULL,
    max_depth INTEGER NOT NULL,
    wait_ms INTEGER NOT NULL DEFAULT 0,
    started_at TIMESTAMP NOT NULL,
    finished_at TIMESTAMP,
    processed_count INTEGER DEFAULT 0,
    failed_count INTEGER DEFAULT 0,
    skipped_count INTEGER DEFAULT 0,
    words_merged INTEGER DEFAULT 0,
    status TEXT NOT NULL DEFAULT 'running', -- running, completed, cancelled, failed
    error_message TEXT
);

CREATE INDEX IF NOT EXISTS idx_runs_started ON crawl_runs(started_at);
CREATE INDEX IF NOT EXISTS idx_runs_seed ON crawl_runs(seed);

-- Every page the crawler dequeued and fetched
CREATE TABLE IF NOT EXISTS page_visits (
    visit_id INTEGER PRIMARY KEY AUTOINCREMENT,
    run_id INTEGER NOT NULL,
    page_id TEXT NOT NULL,
    depth INTEGER NOT NULL,
    status TEXT NOT NULL,           -- ok, empty, failed
    error_type TEXT,                -- fetch, parse, store, other
    error_message TEXT,
    status_code INTEGER,
    word_count INTEGER DEFAULT 0,
    links_found INTEGER DEFAULT 0,
    links_enqueued INTEGER DEFAULT 0,
    language TEXT,
    visited_at TIMESTAMP NOT NULL,
    FOREIGN KEY (run_id) REFERENCES crawl_runs(run_id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_visits_run ON page_visits(run_id);
CREATE INDEX IF NOT EXISTS idx_visits_page ON page_visits(page_id);
CREATE INDEX IF NOT EXISTS idx_visits_status ON page_visits(status);
`
