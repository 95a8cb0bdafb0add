package help

const QuickstartYAML = `# wikifreq Quick Start

modes:
  article: "Top crawled words, compared with the reference language"
  language: "Top reference-language words, looked up in the crawled articles"

commands:
  summary: |
    wikifreq summary "Red Velvet"

  table: |
    wikifreq table "Red Velvet" --number 2 --first-row-is-header

  count_words: |
    wikifreq count-words "Red Velvet"

  crawl: |
    wikifreq crawl "Red Velvet" --depth 1 --wait 1s --report crawl-report.yaml

  analyze: |
    wikifreq analyze --mode article --count 20
    wikifreq analyze --mode language --count 10 --chart comparison.html
    wikifreq analyze --format json
    wikifreq analyze --reference all.num --reference-format bnc --count 50

  history: |
    wikifreq history runs
    wikifreq history run 3

  offline: |
    # Re-run against pages downloaded earlier, no network access
    wikifreq --offline crawl "Red Velvet" --depth 2 --wait 0s

files:
  - "word-counts.json: cumulative word counts (read-merge-write on every page)"
  - "cache/<Phrase_With_Underscores>.html: every downloaded article"
  - "<Phrase>_table_<n>.csv: exported tables"
  - "wikifreq.db: crawl history (runs and page visits)"

config:
  file: "config.yaml (optional, --config)"
  env: "WIKIFREQ_BASE_URL, WIKIFREQ_STORE_PATH, WIKIFREQ_OFFLINE, ... (.env is read too)"
  reference: "reference.path + reference.format (tsv or bnc); the built-in English list otherwise"

error_behavior:
  - "A page that fails during a crawl is logged and recorded, the crawl goes on"
  - "Missing or corrupt word-counts.json is read as empty"
  - "Exit codes: 0=success, 1=error, 130=crawl interrupted"
`
