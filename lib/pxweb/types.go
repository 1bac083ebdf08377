package pxweb

type Language string

const (
	English Language = "en"
	Swedish Language = "sv"
)

type Variable struct {
	Code        string   `json:"code"`
	Text        string   `json:"text"`
	Values      []string `json:"values"`
	ValueTexts  []string `json:"valueTexts"`
	Elimination bool     `json:"elimination"`
	Time        bool     `json:"time"`
}

// Metadata is the response to a GET on a table.
type Metadata struct {
	Title     string     `json:"title"`
	Variables []Variable `json:"variables"`
}

func (m Metadata) Variable(code string) (Variable, bool) {
	for _, v := range m.Variables {
		if v.Code == code {
			return v, true
		}
	}
	return Variable{}, false
}

type Filter struct {
	Filter string   `json:"filter"`
	Values []string `json:"values"`
}

type Selection struct {
	Code      string `json:"code"`
	Selection Filter `json:"selection"`
}

type ResponseFormat struct {
	Format string `json:"format"`
}

type Query struct {
	Query    []Selection    `json:"query"`
	Response ResponseFormat `json:"response"`
}

const (
	ColumnDimension = "d"
	ColumnTime      = "t"
	ColumnMeasure   = "c"
)

type Column struct {
	Code string `json:"code"`
	Text string `json:"text"`
	Type string `json:"type"`
	Unit string `json:"unit,omitempty"`
}

type DataRow struct {
	Key    []string `json:"key"`
	Values []string `json:"values"`
}

type Comment struct {
	Variable string `json:"variable"`
	Value    string `json:"value"`
	Comment  string `json:"comment"`
}

type SourceInfo struct {
	Infofile string `json:"infofile"`
	Updated  string `json:"updated"`
	Label    string `json:"label"`
	Source   string `json:"source"`
}

// Response is the json-format answer to a table query.
type Response struct {
	Columns  []Column     `json:"columns"`
	Comments []Comment    `json:"comments"`
	Data     []DataRow    `json:"data"`
	Metadata []SourceInfo `json:"metadata"`
}
