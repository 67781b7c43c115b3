package junction

import (
	"fmt"
	"math/rand/v2"
	"regexp"

	"junction/internal/domain"
)

const (
	maxAliasAttempts = 32
	maxAliasLen      = 64
)

var aliasPattern = regexp.MustCompile(`^[a-z]+(-[a-z0-9]+)*$`)

var adjectives = []string{
	"amber", "bold", "brave", "bright", "calm", "clever", "cosmic", "crisp",
	"daring", "eager", "fancy", "gentle", "golden", "happy", "jolly", "keen",
	"lively", "lucky", "mellow", "misty", "nimble", "noble", "plucky", "proud",
	"quiet", "rapid", "silent", "silver", "sleepy", "steady", "swift", "witty",
}

var nouns = []string{
	"badger", "beacon", "comet", "condor", "falcon", "ferret", "gecko", "harbor",
	"heron", "ibis", "jackal", "koala", "lark", "lemur", "lynx", "marten",
	"meteor", "moose", "newt", "orca", "otter", "owl", "panda", "puffin",
	"quasar", "raven", "sparrow", "tapir", "walrus", "wombat", "yak", "zebra",
}

// AliasSource picks random indexes for alias generation.
type AliasSource interface {
	IntN(n int) int
}

type defaultSource struct{}

func (defaultSource) IntN(n int) int { return rand.IntN(n) }

// allocAlias returns an alias not present in taken. It tries random
// adjective-noun pairs first, then appends increasing numeric suffixes to the
// last pair tried; the fallback terminates because taken is finite.
func allocAlias(src AliasSource, taken map[domain.Alias]*peer) domain.Alias {
	var candidate domain.Alias
	for range maxAliasAttempts {
		candidate = domain.Alias(adjectives[src.IntN(len(adjectives))] + "-" + nouns[src.IntN(len(nouns))])
		if _, ok := taken[candidate]; !ok {
			return candidate
		}
	}
	for n := 2; ; n++ {
		suffixed := domain.Alias(fmt.Sprintf("%s-%d", candidate, n))
		if _, ok := taken[suffixed]; !ok {
			return suffixed
		}
	}
}

// ValidAlias reports whether a is a well-formed alias.
func ValidAlias(a domain.Alias) bool {
	return len(a) > 0 && len(a) <= maxAliasLen && aliasPattern.MatchString(string(a))
}
