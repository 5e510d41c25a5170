package clickatell

import (
	"fmt"
	"strings"

	"github.com/clickatell/clickatell-go/strbuf"
	"github.com/clickatell/clickatell-go/transport"
)

// param is one request field. Values are stored ready for the wire; callers
// percent-encode them before adding when the target is a legacy query string.
type param struct {
	key   string
	value string
}

// paramSet is an ordered collection of request fields plus an optional
// recipient list, describing one gateway call.
type paramSet struct {
	params     []param
	recipients []string
}

// newParamSet allocates a set sized for n fields. n must be at least 1.
func newParamSet(n int) (*paramSet, error) {
	if n < 1 {
		return nil, fmt.Errorf("%w: parameter count must be at least 1, got %d", ErrInvalidInput, n)
	}
	return &paramSet{params: make([]param, 0, n)}, nil
}

func (p *paramSet) add(key, value string) {
	p.params = append(p.params, param{key: key, value: value})
}

// addEncoded percent-encodes value before storing it. Used for legacy-form
// fields, which land in a query string.
func (p *paramSet) addEncoded(key, value string) error {
	enc, err := urlEncode(value)
	if err != nil {
		return err
	}
	p.add(key, enc)
	return nil
}

func (p *paramSet) setRecipients(to []string) {
	p.recipients = to
}

// urlEncode percent-encodes s for use in a query string. The empty string
// encodes to itself.
func urlEncode(s string) (string, error) {
	if s == "" {
		return "", nil
	}
	b, err := strbuf.New(s)
	if err != nil {
		return "", err
	}
	if err := b.URLEncode(); err != nil {
		return "", err
	}
	return b.String(), nil
}

// formFields renders the set as "k1=v1&k2=v2&to=r1,r2". Values are inserted
// as stored; recipients are joined raw with commas.
func (p *paramSet) formFields() (string, error) {
	b, err := strbuf.New(p.params[0].key)
	if err != nil {
		return "", err
	}
	if err := b.Appendf("=%s", p.params[0].value); err != nil {
		return "", err
	}
	for _, pr := range p.params[1:] {
		if err := b.Appendf("&%s=%s", pr.key, pr.value); err != nil {
			return "", err
		}
	}
	if len(p.recipients) > 0 {
		if err := b.Appendf("&to=%s", strings.Join(p.recipients, ",")); err != nil {
			return "", err
		}
	}
	return b.String(), nil
}

// jsonBody renders the set as a JSON object literal. Values are inserted
// verbatim with no string escaping, matching the gateway wire format this
// client has always produced. A value containing a double quote or backslash
// corrupts the payload; see TestJSONBodyNoEscaping.
func (p *paramSet) jsonBody() (string, error) {
	b, err := strbuf.New("{")
	if err != nil {
		return "", err
	}
	for i, pr := range p.params {
		if i > 0 {
			if err := b.AppendString(","); err != nil {
				return "", err
			}
		}
		if err := b.Appendf("\"%s\":\"%s\"", pr.key, pr.value); err != nil {
			return "", err
		}
	}
	if len(p.recipients) > 0 {
		if err := b.AppendString(",\"to\":["); err != nil {
			return "", err
		}
		for i, r := range p.recipients {
			if i > 0 {
				if err := b.AppendString(","); err != nil {
					return "", err
				}
			}
			if err := b.Appendf("\"%s\"", r); err != nil {
				return "", err
			}
		}
		if err := b.AppendString("]"); err != nil {
			return "", err
		}
	}
	if err := b.AppendString("}"); err != nil {
		return "", err
	}
	return b.String(), nil
}

// buildTarget assembles the final URL and request body for one call. For GET
// and DELETE the formatted fields are appended to the URL as a query string;
// for POST they become the request body. A nil paramSet means the path alone
// is the target, as with REST calls that embed their identifier in the path.
func buildTarget(baseURL, path string, api API, method transport.Method, p *paramSet) (string, []byte, error) {
	target := baseURL + path
	if p == nil || len(p.params) == 0 {
		return target, nil, nil
	}
	if api == APIREST {
		body, err := p.jsonBody()
		if err != nil {
			return "", nil, err
		}
		return target, []byte(body), nil
	}
	fields, err := p.formFields()
	if err != nil {
		return "", nil, err
	}
	if method == transport.MethodPost {
		return target, []byte(fields), nil
	}
	return target + "?" + fields, nil, nil
}
