package objects

// Policy selects the pages an object is placed on.
type Policy int

const (
	// CurrentPageOnly places the object once, on the page that is active
	// when the placement is registered ("add").
	CurrentPageOnly Policy = iota + 1
	// AllFromHere places the object on the current and every following
	// page ("all").
	AllFromHere
	// OddFromHere places the object on odd pages from the current one on
	// ("odd").
	OddFromHere
	// EvenFromHere places the object on even pages from the current one on
	// ("even").
	EvenFromHere
	// NextPageOnly places the object once, on the page after the current
	// one ("next").
	NextPageOnly
	// NextOddPage places the object on odd pages, starting after the
	// current page ("nextodd").
	NextOddPage
	// NextEvenPage places the object on even pages, starting after the
	// current page ("nexteven").
	NextEvenPage
)

var policyNames = map[string]Policy{
	"add":      CurrentPageOnly,
	"all":      AllFromHere,
	"odd":      OddFromHere,
	"even":     EvenFromHere,
	"next":     NextPageOnly,
	"nextodd":  NextOddPage,
	"nexteven": NextEvenPage,
}

// ParsePolicy maps a placement keyword to its Policy. The empty string
// selects AllFromHere.
func ParsePolicy(name string) (Policy, error) {
	if name == "" {
		return AllFromHere, nil
	}
	p, ok := policyNames[name]
	if !ok {
		return 0, &InvalidPolicyError{Name: name}
	}
	return p, nil
}

func (p Policy) String() string {
	for name, q := range policyNames {
		if p == q {
			return name
		}
	}
	return "invalid"
}

// next reports whether the policy only becomes active on the page after
// the one it was registered on.
func (p Policy) next() bool {
	return p == NextPageOnly || p == NextOddPage || p == NextEvenPage
}

// once reports whether the policy places its object on a single page.
func (p Policy) once() bool {
	return p == CurrentPageOnly || p == NextPageOnly
}

// Placement is a policy bound to the page it becomes active on.
type Placement struct {
	Policy    Policy
	StartPage int
}

// NewPlacement binds p to currentPage, or to the page after it for the
// "next" family. Before the first page, currentPage is 0 and every policy
// starts on page 1.
func NewPlacement(p Policy, currentPage int) Placement {
	if currentPage < 1 {
		return Placement{Policy: p, StartPage: 1}
	}
	start := currentPage
	if p.next() {
		start++
	}
	return Placement{Policy: p, StartPage: start}
}

// Due reports whether the object belongs on page.
func (pl Placement) Due(page int) bool {
	switch pl.Policy {
	case CurrentPageOnly, NextPageOnly:
		return page == pl.StartPage
	case AllFromHere:
		return page >= pl.StartPage
	case OddFromHere, NextOddPage:
		return page >= pl.StartPage && page%2 == 1
	case EvenFromHere, NextEvenPage:
		return page >= pl.StartPage && page%2 == 0
	}
	return false
}

// expired reports whether a single-shot placement can no longer become
// due once page has been reached.
func (pl Placement) expired(page int) bool {
	return pl.Policy.once() && page >= pl.StartPage
}
