package data

// ElasticResult - an indexer _search response
type ElasticResult struct {
	Hits struct {
		Total struct {
			Value int `json:"value"`
		} `json:"total"`
		Hits []*ElasticEntry `json:"hits"`
	} `json:"hits"`
}

// ElasticEntry - one indexed transaction
type ElasticEntry struct {
	ID     string `json:"_id"`
	Source struct {
		Nonce    uint64 `json:"nonce"`
		Sender   string `json:"sender"`
		Receiver string `json:"receiver"`
		Value    string `json:"value"`
		Data     []byte `json:"data"`
		Status   string `json:"status"`
	} `json:"_source"`
}
