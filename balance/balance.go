package balance

import "sync"

// Balance reads a fragment of sanitized, HTML-like markup and returns
// well-formed, spec-conformant HTML (§6 Operation). cb, if non-nil, is
// invoked once for every tag the tokenizer recognizes, end tags
// included, with that tag's raw attribute fragment before
// normalization, letting a host perform substitution or validation
// ahead of the allow-list and normalizer. What cb leaves in an end
// tag's fragment is discarded unless the allow-list turns the tag into
// literal text.
//
// Internally this runs a tokenizer and a tree constructor on separate
// goroutines connected by a channel, synchronized with a WaitGroup:
// the tokenizer only ever produces, the constructor only ever
// consumes, and the pipeline shuts down once the constructor has
// observed the end-of-input token.
func (b *Balancer) Balance(input string, cb ProcessingCallback, args interface{}) (out string, err error) {
	b.reset()

	if b.strict {
		defer func() {
			if r := recover(); r != nil {
				if ae, ok := r.(*AssertionError); ok {
					err = ae
					return
				}
				panic(r)
			}
		}()
	} else {
		defer func() {
			if r := recover(); r != nil {
				if _, ok := r.(*AssertionError); ok {
					out = b.stack.FlattenRemaining()
					return
				}
				panic(r)
			}
		}()
	}

	tokenizer := newTokenizer(input, cb, args, b.allowed, b.normalize, b.strict)

	tokens := make(chan *Token)
	var wg sync.WaitGroup
	wg.Add(1)
	go tokenizer.Run(tokens, &wg)

	for tok := range tokens {
		if tok.Kind == eofToken {
			b.processToken(tok)
			break
		}
		if tok.Kind == errorToken {
			panic(tok.Err)
		}
		b.processToken(tok)
	}
	wg.Wait()

	out = b.stack.FlattenRemaining()
	return out, nil
}

// Balance is a package-level convenience wrapping New and Balancer.Balance
// for one-shot use with default configuration (§6).
func Balance(input string, cb ProcessingCallback, args interface{}, opts ...Option) (string, error) {
	b, err := New(opts...)
	if err != nil {
		return "", err
	}
	return b.Balance(input, cb, args)
}
