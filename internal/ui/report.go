package ui

import "github.com/K3nZo20/DbMetaTool/pkg/dbmeta"

// MetadataReportHeading introduces the metadata.json content after build-db.
const MetadataReportHeading = "=== METADATA REPORT ==="

// PrintMetadataReport prints metadata as the build report, or a notice when
// the scripts directory carried no metadata.json.
func (p *Printer) PrintMetadataReport(metadata []byte) {
	if metadata == nil {
		p.Notice("No " + dbmeta.MetadataFile + " in scripts directory.")
		return
	}
	p.Heading(MetadataReportHeading)
	p.Block(string(metadata))
}
