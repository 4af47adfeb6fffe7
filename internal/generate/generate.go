// Package generate writes sample user records for trying out a run.
//
// Valid records satisfy the user schema. Invalid records break it in one of a
// few ways (bad age, bad email, bad isActive) and always carry a broken address
// as well, mirroring the sample data the pipeline was first exercised with.
package generate

import (
	"fmt"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"

	json "github.com/goccy/go-json"
)

const (
	letters = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"
	digits  = "0123456789"
)

var sampleTags = []string{"developer", "manager", "devops", "data engineer", "scrum master"}

// Options controls a generation run.
type Options struct {
	Valid   int
	Invalid int
	Dir     string
	Seed    uint64
}

// Generator produces random records from a seeded source.
type Generator struct {
	rng *rand.Rand
}

// New returns a generator. The same seed yields the same records.
func New(seed uint64) *Generator {
	return &Generator{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// Files writes opts.Valid valid and opts.Invalid invalid records into opts.Dir,
// creating it if needed, and returns the file names written. Ids are 1-based
// and continue from the valid records into the invalid ones.
func Files(opts Options) ([]string, error) {
	if opts.Valid < 0 || opts.Invalid < 0 {
		return nil, fmt.Errorf("record counts must not be negative")
	}
	if err := os.MkdirAll(opts.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("create %s: %w", opts.Dir, err)
	}

	g := New(opts.Seed)
	names := make([]string, 0, opts.Valid+opts.Invalid)

	for i := 0; i < opts.Valid; i++ {
		id := i + 1
		name := fmt.Sprintf("valid_user_%d.json", id)
		if err := writeRecord(opts.Dir, name, g.ValidUser(id)); err != nil {
			return names, err
		}
		names = append(names, name)
	}
	for i := 0; i < opts.Invalid; i++ {
		id := opts.Valid + i + 1
		name := fmt.Sprintf("invalid_user_%d.json", id)
		if err := writeRecord(opts.Dir, name, g.InvalidUser(id)); err != nil {
			return names, err
		}
		names = append(names, name)
	}
	return names, nil
}

func writeRecord(dir, name string, record map[string]any) error {
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("encode %s: %w", name, err)
	}
	if err := os.WriteFile(filepath.Join(dir, name), data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	return nil
}

// ValidUser returns a record that passes validation.
func (g *Generator) ValidUser(id int) map[string]any {
	return map[string]any{
		"id":       id,
		"email":    g.str(5) + "@" + g.str(6),
		"name":     g.title(7) + " " + g.title(6),
		"age":      18 + g.rng.IntN(63),
		"isActive": g.rng.IntN(2) == 1,
		"tags":     g.tags(2),
		"address":  g.validAddress(),
	}
}

// InvalidUser returns a record that fails validation on at least two fields.
func (g *Generator) InvalidUser(id int) map[string]any {
	u := g.ValidUser(id)
	switch g.rng.IntN(3) {
	case 0:
		u["age"] = g.str(5)
	case 1:
		u["email"] = g.str(15)
	default:
		u["isActive"] = g.str(2)
	}
	u["address"] = g.invalidAddress()
	return u
}

func (g *Generator) validAddress() map[string]any {
	return map[string]any{
		"street":   fmt.Sprintf("%d %s st", 1+g.rng.IntN(9999), g.str(8)),
		"city":     g.title(10),
		"postCode": g.pick(digits, 5),
	}
}

func (g *Generator) invalidAddress() map[string]any {
	addr := g.validAddress()
	switch g.rng.IntN(3) {
	case 0:
		delete(addr, "postCode")
	case 1:
		// At least one letter so the code can never be all digits.
		code := []byte(g.pick(letters+digits, 4))
		code = append(code, letters[g.rng.IntN(len(letters))])
		g.rng.Shuffle(len(code), func(i, j int) { code[i], code[j] = code[j], code[i] })
		addr["postCode"] = string(code)
	default:
		addr["postCode"] = g.pick(digits, 2+g.rng.IntN(3))
	}
	return addr
}

func (g *Generator) tags(n int) []string {
	perm := g.rng.Perm(len(sampleTags))
	out := make([]string, 0, n)
	for _, i := range perm[:n] {
		out = append(out, sampleTags[i])
	}
	return out
}

func (g *Generator) str(n int) string {
	return g.pick(letters+digits, n)
}

func (g *Generator) title(n int) string {
	s := strings.ToLower(g.pick(letters, n))
	return strings.ToUpper(s[:1]) + s[1:]
}

func (g *Generator) pick(alphabet string, n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = alphabet[g.rng.IntN(len(alphabet))]
	}
	return string(b)
}
