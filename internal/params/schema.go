package params

import "fmt"

// BCSchema names the tables and columns of the store sales ledger source.
// Nothing here is hard-coded: every identifier comes from the BC parameter
// document.
type BCSchema struct {
	// TablePrefix is prepended to every BC table name (company prefix).
	TablePrefix     string
	StoreMapTable   string
	DimValueTable   string
	SalesEntryTable string

	LocCodeCol  string
	NameCol     string
	StoreDimCol string
	CodeCol     string
	StoreNoCol  string
	NetAmtCol   string
	DateCol     string
}

// PDSchema names the planning-data schema holding targets and the store area
// history.
type PDSchema struct {
	SchemaName  string
	StoreTable  string
	TargetTable string
	AreaTable   string

	StoreCol     string
	TargetCol    string
	DateCol      string
	AreaCol      string
	EffectiveCol string
}

// Schema is the full externally-injected naming configuration the query
// builder consumes.
type Schema struct {
	BC BCSchema
	PD PDSchema
}

func subDocument(doc map[string]any, field string) (map[string]any, error) {
	raw, ok := doc[field]
	if !ok {
		return nil, fmt.Errorf("parameter document is missing field %q", field)
	}
	m, ok := raw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("parameter field %q is not a document", field)
	}
	return m, nil
}

func stringKey(m map[string]any, field, key string) (string, error) {
	raw, ok := m[key]
	if !ok {
		return "", fmt.Errorf("parameter field %q is missing key %q", field, key)
	}
	s, ok := raw.(string)
	if !ok || s == "" {
		return "", fmt.Errorf("parameter key %s.%s is not a non-empty string", field, key)
	}
	return s, nil
}

// BCFromDocument builds the BC schema from its parameter document, failing
// on any missing table or column key before SQL construction can start.
func BCFromDocument(doc map[string]any) (BCSchema, error) {
	var s BCSchema

	tables, err := subDocument(doc, "tabel_bc")
	if err != nil {
		return s, err
	}
	columns, err := subDocument(doc, "kolom_bc")
	if err != nil {
		return s, err
	}

	for key, dst := range map[string]*string{
		"pri":                   &s.TablePrefix,
		"store_map_5ec":         &s.StoreMapTable,
		"dim_val_437":           &s.DimValueTable,
		"store_sales_entry_5ec": &s.SalesEntryTable,
	} {
		if *dst, err = stringKey(tables, "tabel_bc", key); err != nil {
			return BCSchema{}, err
		}
	}
	for key, dst := range map[string]*string{
		"loc_code":  &s.LocCodeCol,
		"name":      &s.NameCol,
		"store_dim": &s.StoreDimCol,
		"code":      &s.CodeCol,
		"store_no":  &s.StoreNoCol,
		"net_amt":   &s.NetAmtCol,
		"date":      &s.DateCol,
	} {
		if *dst, err = stringKey(columns, "kolom_bc", key); err != nil {
			return BCSchema{}, err
		}
	}
	return s, nil
}

// PDFromDocument builds the PD schema from its parameter document.
func PDFromDocument(doc map[string]any) (PDSchema, error) {
	var s PDSchema
	var err error

	if s.SchemaName, err = stringKey(doc, "(root)", "nama"); err != nil {
		return PDSchema{}, err
	}

	tables, err := subDocument(doc, "tabel")
	if err != nil {
		return PDSchema{}, err
	}
	columns, err := subDocument(doc, "kolom")
	if err != nil {
		return PDSchema{}, err
	}

	for key, dst := range map[string]*string{
		"ms": &s.StoreTable,
		"dt": &s.TargetTable,
		"at": &s.AreaTable,
	} {
		if *dst, err = stringKey(tables, "tabel", key); err != nil {
			return PDSchema{}, err
		}
	}
	for key, dst := range map[string]*string{
		"kt":   &s.StoreCol,
		"ntnp": &s.TargetCol,
		"t":    &s.DateCol,
		"a":    &s.AreaCol,
		"te":   &s.EffectiveCol,
	} {
		if *dst, err = stringKey(columns, "kolom", key); err != nil {
			return PDSchema{}, err
		}
	}
	return s, nil
}
