package core

type ConnectionParams struct {
	ID   ConnectionID
	Type string
	URL  string
}

// Expand returns a copy of the parameters with the url template rendered.
// Commands in the template only run with allowExec.
func (cp *ConnectionParams) Expand(allowExec bool) *ConnectionParams {
	return &ConnectionParams{
		ID:   cp.ID,
		Type: cp.Type,
		URL:  expandOrDefault(cp.URL, allowExec),
	}
}
