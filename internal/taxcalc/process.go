package taxcalc

// Result is the outcome of processing one raw record.
type Result struct {
	Record     Record     `json:"record"`
	Violations Violations `json:"violations"`
}

// Valid reports whether the input passed every rule.
func (r Result) Valid() bool {
	return len(r.Violations) == 0
}

// Processor validates and derives records with a fixed rounding policy.
// The zero value uses DefaultRounding.
type Processor struct {
	deriver Deriver
	rules   []Rule
}

// NewProcessor builds a Processor around the given rounding policy.
func NewProcessor(rounding Rounding) *Processor {
	return &Processor{deriver: NewDeriver(rounding), rules: Rules}
}

// Process validates raw as received and derives its totals. Derivation always
// runs so callers can preview totals of an incomplete record; persisting is
// the caller's decision based on Result.Valid.
func (p *Processor) Process(raw Record) Result {
	deriver, rules := p.resolve()
	violations := ValidateWith(raw, rules...)
	if violations == nil {
		violations = Violations{}
	}
	return Result{
		Record:     deriver.Derive(raw),
		Violations: violations,
	}
}

// Derive recomputes every derived field of r with p's rounding policy.
// Stored records go through it on read so totals always follow their inputs.
func (p *Processor) Derive(r Record) Record {
	d, _ := p.resolve()
	return d.Derive(r)
}

// Rounding returns the policy applied by p.
func (p *Processor) Rounding() Rounding {
	d, _ := p.resolve()
	return d.Rounding
}

// Process uses DefaultRounding.
func Process(raw Record) Result {
	return (&Processor{}).Process(raw)
}

func (p *Processor) resolve() (Deriver, []Rule) {
	d, rules := p.deriver, p.rules
	if d.Rounding.Mode == "" {
		d = NewDeriver(DefaultRounding)
	}
	if rules == nil {
		rules = Rules
	}
	return d, rules
}
