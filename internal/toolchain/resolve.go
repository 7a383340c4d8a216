package toolchain

import (
	"fmt"
	"io"
	"log"

	"github.com/danieljhkim/vcenv/internal/regstore"
)

// Resolver reads the fragments of a profile from the store.
type Resolver struct {
	store  regstore.Reader
	logger *log.Logger
}

// NewResolver creates a Resolver. A nil logger discards trace output.
func NewResolver(store regstore.Reader, logger *log.Logger) *Resolver {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Resolver{store: store, logger: logger}
}

// Resolve reads every fragment of p that applies under opts.
//
// Editions are tried in order, and only a NotFound on the root fragment
// moves on to the next edition. Within the chosen edition a fragment falls
// back to its alternate source on NotFound; a mandatory fragment that still
// fails yields *MissingFragmentError, an optional one is left out.
func (r *Resolver) Resolve(p *Profile, opts Options) (*Resolution, error) {
	if err := p.ValidateOptions(opts); err != nil {
		return nil, err
	}

	edition, root, err := r.selectEdition(p)
	if err != nil {
		return nil, err
	}
	r.logger.Printf("%s: using edition %q", p.Version, edition.Name)

	frags := Fragments{p.Root: root}
	for _, spec := range p.Fragments {
		if spec.Role == p.Root || !spec.When.Holds(opts) {
			continue
		}

		v, err := r.readSpec(edition, spec, frags)
		if err != nil {
			if spec.Optional {
				r.logger.Printf("%s: optional %s unavailable: %v", p.Version, spec.Role, err)
				continue
			}
			if regstore.IsNotFound(err) {
				return nil, &MissingFragmentError{Profile: p.Product, Role: spec.Role, Err: err}
			}
			return nil, fmt.Errorf("%s: reading %s: %w", p.Product, spec.Role, err)
		}
		frags[spec.Role] = v
	}

	return &Resolution{
		Profile:   p,
		Edition:   edition,
		Options:   opts,
		Fragments: frags,
	}, nil
}

// selectEdition returns the first edition whose root fragment exists.
func (r *Resolver) selectEdition(p *Profile) (Edition, string, error) {
	spec, ok := p.fragment(p.Root)
	if !ok {
		return Edition{}, "", fmt.Errorf("%s: profile declares no %s fragment", p.Product, p.Root)
	}

	var lastErr error
	for _, ed := range p.Editions {
		v, err := r.readSpec(ed, spec, Fragments{})
		if err == nil {
			return ed, v, nil
		}
		if !regstore.IsNotFound(err) {
			return Edition{}, "", fmt.Errorf("%s: reading %s: %w", ed.Name, spec.Role, err)
		}
		r.logger.Printf("%s: edition %q not installed: %v", p.Version, ed.Name, err)
		lastErr = err
	}

	return Edition{}, "", &MissingFragmentError{Profile: p.Product, Role: p.Root, Err: lastErr}
}

// readSpec reads the primary source and, on NotFound, the fallback.
func (r *Resolver) readSpec(ed Edition, spec FragmentSpec, frags Fragments) (string, error) {
	v, err := r.read(ed, spec.Source, frags)
	if err != nil && spec.Fallback != nil && regstore.IsNotFound(err) {
		r.logger.Printf("%s: primary source failed (%v), trying fallback", spec.Role, err)
		v, err = r.read(ed, *spec.Fallback, frags)
	}
	if err != nil {
		return "", err
	}
	return Normalize(v), nil
}

func (r *Resolver) read(ed Edition, src Source, frags Fragments) (string, error) {
	if src.Derive != "" {
		return Expand(src.Derive, frags)
	}

	path := src.path(ed)
	r.logger.Printf("reading %s\\%s", path, src.Value)
	return r.store.ReadString(path, src.Value)
}
