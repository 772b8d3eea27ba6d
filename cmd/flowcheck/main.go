// flowcheck compiles one reporting period of a company into a flow graph
// and prints the node and link tables. Facts come from SEC EDGAR, or from
// a local dataset JSON file for offline work:
//
//	flowcheck -ticker AAPL
//	flowcheck -ticker MSFT -period Q1-2025 -annual=false
//	flowcheck -dataset fixtures/aapl.json -template my-template.hjson
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"storcky/pkg/core/edgar"
	"storcky/pkg/core/facts"
	"storcky/pkg/core/flowgraph"

	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env not found, using environment variables")
	}

	ticker := flag.String("ticker", "", "company ticker or CIK to fetch from SEC EDGAR")
	datasetPath := flag.String("dataset", "", "local dataset JSON file instead of fetching")
	periodID := flag.String("period", "", "period id to compile (default: latest)")
	annual := flag.Bool("annual", false, "use annual (FY) periods instead of quarterly")
	templatePath := flag.String("template", "", "template file overriding the built-in layout")
	flag.Parse()

	ds, err := loadDataset(*ticker, *datasetPath, *annual)
	if err != nil {
		log.Fatalf("Error: %v", err)
	}

	id := *periodID
	if id == "" {
		latest, ok := ds.LatestPeriod()
		if !ok {
			log.Fatalf("Error: dataset for %s has no periods", ds.Company.Name)
		}
		id = latest.ID
	}

	base := flowgraph.DefaultTemplate()
	if *templatePath != "" {
		base, err = flowgraph.LoadTemplateFile(*templatePath)
		if err != nil {
			log.Fatalf("Error: %v", err)
		}
	}

	graph, err := flowgraph.NewCompiler(base).Compile(*ds, id, nil)
	if err != nil {
		log.Fatalf("Error: %v", err)
	}

	fmt.Printf("\n=== %s - %s ===\n\n", ds.Company.Name, id)
	fmt.Printf("%-24s %-28s %16s\n", "NODE", "TITLE", "VALUE")
	for _, n := range graph.Nodes {
		fmt.Printf("%-24s %-28s %16s\n", n.ID, n.Title, n.Label)
	}
	fmt.Printf("\n%-24s %-24s %16s\n", "SOURCE", "TARGET", "FLOW")
	for _, l := range graph.Links {
		fmt.Printf("%-24s %-24s %16s\n", l.Source, l.Target, flowgraph.FormatCurrency(l.Value))
	}
}

func loadDataset(ticker, path string, annual bool) (*facts.CompanyDataset, error) {
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read dataset %s: %w", path, err)
		}
		var ds facts.CompanyDataset
		if err := json.Unmarshal(data, &ds); err != nil {
			return nil, fmt.Errorf("parse dataset %s: %w", path, err)
		}
		return &ds, nil
	}

	if ticker == "" {
		return nil, fmt.Errorf("either -ticker or -dataset is required")
	}

	client := edgar.NewClient(os.Getenv("SEC_USER_AGENT"))
	cik, err := client.ResolveCIK(ticker)
	if err != nil {
		return nil, err
	}
	cf, err := client.FetchCompanyFacts(cik)
	if err != nil {
		return nil, err
	}
	periodType := edgar.PeriodQuarterly
	if annual {
		periodType = edgar.PeriodAnnual
	}
	ds := edgar.BuildDataset(cf, ticker, periodType, 8)
	return &ds, nil
}
