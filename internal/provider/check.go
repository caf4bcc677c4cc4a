package provider

import "go.uber.org/multierr"

// Result is the outcome of validating a single setting or connection.
type Result struct {
	Key        string
	Connection bool
	Value      string
	Err        error
}

// Report collects the results of a Check run.
type Report struct {
	Results []Result
}

// Err combines every failure in the report, or returns nil when all passed.
func (r Report) Err() error {
	var err error
	for _, res := range r.Results {
		err = multierr.Append(err, res.Err)
	}
	return err
}

// Failed returns the number of failing results.
func (r Report) Failed() int {
	n := 0
	for _, res := range r.Results {
		if res.Err != nil {
			n++
		}
	}
	return n
}

// Check validates every known setting followed by the named connections.
// For connections Value holds the provider name.
func (p *Provider) Check(connectionNames ...string) Report {
	keys := KnownSettings()
	report := Report{Results: make([]Result, 0, len(keys)+len(connectionNames))}

	for _, key := range keys {
		value, err := p.Setting(key)
		report.Results = append(report.Results, Result{Key: key, Value: value, Err: err})
	}

	for _, name := range connectionNames {
		info, err := p.DBConnectionInformation(name)
		report.Results = append(report.Results, Result{
			Key:        name,
			Connection: true,
			Value:      info.ProviderName,
			Err:        err,
		})
	}

	return report
}
