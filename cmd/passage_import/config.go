package main

import "flag"

type cliConfig struct {
	FilePath    string
	EsAddresses string
	EsIndex     string
	BatchSize   int
}

func parseFlags() cliConfig {
	cfg := cliConfig{}

	flag.StringVar(&cfg.FilePath, "file", "", "Path to JSONL file of passages")
	flag.StringVar(&cfg.EsAddresses, "es-addresses", "http://localhost:9200", "Elasticsearch addresses, comma-separated")
	flag.StringVar(&cfg.EsIndex, "es-index", "passages", "Elasticsearch index name")
	flag.IntVar(&cfg.BatchSize, "batch", 500, "Number of passages per bulk request")

	flag.Parse()
	return cfg
}
