package balance

import "github.com/sirupsen/logrus"

// Balancer holds the configuration and per-call working state for one
// balancing run (§6 Configuration). A Balancer is not safe for
// concurrent use by multiple goroutines calling Balance at once, since
// the stack, formatting list, and insertion mode are call-scoped
// state reset at the start of every Balance; callers that need
// concurrency should construct one Balancer per goroutine, mirroring
// the functional-options builder pattern common across this stack.
type Balancer struct {
	strict    bool
	allowed   set
	normalize AttrNormalizer
	log       *logrus.Logger

	stack        *OpenElementStack
	formatting   *ActiveFormattingList
	mode         insertionMode
	originalMode insertionMode
	templateModes []insertionMode
	pendingText  pendingTableCharacters
}

// Option configures a Balancer at construction time (§6).
type Option func(*Balancer) error

// New builds a Balancer from the supplied options, applying the
// defaults described in §6: non-strict mode, no tag allow-list
// (everything not in the fixed unsupported set is permitted), the
// default attribute normalizer, and a discarding logger.
func New(opts ...Option) (*Balancer, error) {
	b := &Balancer{
		normalize: DefaultAttrNormalizer,
		log:       discardLogger,
	}
	for _, opt := range opts {
		if err := opt(b); err != nil {
			return nil, err
		}
	}
	return b, nil
}

// WithStrict enables strict mode (§6, §7 category 1): input-contract
// violations that non-strict mode would silently absorb instead make
// Balance return an *AssertionError as its error.
func WithStrict() Option {
	return func(b *Balancer) error {
		b.strict = true
		return nil
	}
}

// WithAllowedHTMLElements restricts which HTML-namespace tag names may
// reach the tree constructor; anything else is emitted as escaped text
// (§1 "tag allow-list filter", §6). Passing any name from the fixed
// unsupported set (§1 Non-goals) is rejected: the engine has no
// insertion-mode support for html/head/body/frameset/form/frame and the
// handful of rawtext-family elements, allow-list or not.
func WithAllowedHTMLElements(names ...string) Option {
	return func(b *Balancer) error {
		for _, n := range names {
			if unsupportedElements.has(n) {
				return newConfigError("allowed element %q is permanently unsupported", n)
			}
		}
		b.allowed = newSet(names...)
		return nil
	}
}

// WithAttrNormalizer overrides the default attribute-normalization
// function (§1 "attribute-normalization function"). The supplied
// function must return a canonical (" name=\"value\"")* string.
func WithAttrNormalizer(fn AttrNormalizer) Option {
	return func(b *Balancer) error {
		if fn == nil {
			return newConfigError("attribute normalizer must not be nil")
		}
		b.normalize = fn
		return nil
	}
}

// WithLogger routes malformed-content recovery notices (§7 category 2)
// to l at Debug level instead of discarding them.
func WithLogger(l *logrus.Logger) Option {
	return func(b *Balancer) error {
		if l == nil {
			return newConfigError("logger must not be nil")
		}
		b.log = l
		return nil
	}
}

func (b *Balancer) reset() {
	b.stack = newOpenElementStack()
	b.formatting = newActiveFormattingList()
	b.mode = modeInBody
	b.originalMode = modeInBody
	b.templateModes = nil
	b.pendingText.reset()
}
