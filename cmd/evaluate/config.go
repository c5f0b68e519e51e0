package main

import "flag"

type cliConfig struct {
	SuitePath   string
	Query       string
	Size        int
	EsAddresses string
	EsIndex     string
	Output      string
	Concurrency int
}

func parseFlags() cliConfig {
	cfg := cliConfig{}

	flag.StringVar(&cfg.SuitePath, "suite", "", "Path to evaluation suite YAML (batch mode)")
	flag.StringVar(&cfg.Query, "query", "", "Single query to evaluate (quick mode)")
	flag.IntVar(&cfg.Size, "size", 10, "Number of candidates to retrieve per query")
	flag.StringVar(&cfg.EsAddresses, "es-addresses", "http://localhost:9200", "Elasticsearch addresses, comma-separated")
	flag.StringVar(&cfg.EsIndex, "es-index", "passages", "Elasticsearch index name")
	flag.StringVar(&cfg.Output, "output", "", "Directory for JSON run files (omit to skip saving)")
	flag.IntVar(&cfg.Concurrency, "concurrency", 4, "Maximum passages scored at once")

	flag.Parse()
	return cfg
}
