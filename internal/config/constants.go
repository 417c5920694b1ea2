package config

// Publisher listing pages for current and historical releases. Consumed in
// order; entries from later pages win on DateKey collisions.
var DefaultRatePages = []string{
	"https://www.eiopa.europa.eu/tools-and-data/risk-free-interest-rate-term-structures_en",
	"https://www.eiopa.europa.eu/risk-free-rate-previous-releases-and-preparatory-phase_en",
}

// TermStructurePattern identifies the workbook entry inside a release
// archive. Each archive is expected to contain exactly one matching entry.
const TermStructurePattern = "_Term_Structures.xlsx"

// Cache subdirectory names under the data directory.
const (
	DownloadDirName = "download"
	ExcelDirName    = "excel"
	LogsDirName     = "logs"
)
