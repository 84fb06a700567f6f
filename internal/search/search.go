package search

import (
	"sort"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/nais/usersync/internal/users"
)

// Match returns the rank of a match between q and val. 0 means best match. -1 means no match.
func Match(q, val string) int {
	return fuzzy.RankMatchFold(q, val)
}

type result struct {
	rank int
	user users.User
}

// Users returns the records matching q on name, address or email, best match first.
// records is not modified.
func Users(records []users.User, q string) []users.User {
	results := []result{}
	for _, u := range records {
		rank := best(q, u.Name, u.Address, u.Email)
		if rank == -1 {
			continue
		}
		results = append(results, result{rank: rank, user: u})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].rank < results[j].rank
	})

	ret := make([]users.User, 0, len(results))
	for _, r := range results {
		ret = append(ret, r.user)
	}
	return ret
}

func best(q string, vals ...string) int {
	ret := -1
	for _, v := range vals {
		rank := Match(q, v)
		if rank == -1 {
			continue
		}
		if ret == -1 || rank < ret {
			ret = rank
		}
	}
	return ret
}
