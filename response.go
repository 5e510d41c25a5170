package clickatell

import (
	"fmt"
	"strings"

	"github.com/clickatell/clickatell-go/strbuf"
)

// restIDMarker precedes the message identifier in REST send responses.
const restIDMarker = `apiMessageId":"`

// legacyIDPrefix starts each line of a legacy send response.
const legacyIDPrefix = "ID: "

// ExtractMessageID pulls the gateway-assigned message identifier out of a raw
// send response. Legacy responses look like "ID: a1b2c3" (one line per
// recipient; the first identifier is returned); REST responses are JSON
// carrying an "apiMessageId" field. Returns ErrMessageIDNotFound when the
// response does not carry an identifier in the expected shape.
func ExtractMessageID(api API, response string) (string, error) {
	const op = "extract message ID"
	if response == "" {
		return "", responseErr(op, fmt.Errorf("%w: empty response", ErrMessageIDNotFound))
	}
	buf, err := strbuf.New(response)
	if err != nil {
		return "", responseErr(op, err)
	}

	marker := legacyIDPrefix
	if api == APIREST {
		marker = restIDMarker
	}
	pos := buf.Find(marker, 0)
	if pos < 0 {
		return "", responseErr(op, ErrMessageIDNotFound)
	}
	if err := buf.TrimPrefix(pos + len(marker)); err != nil {
		return "", responseErr(op, fmt.Errorf("%w: response ends at marker", ErrMessageIDNotFound))
	}

	rest := buf.String()
	var id string
	if api == APIREST {
		end := strings.IndexByte(rest, '"')
		if end < 0 {
			return "", responseErr(op, fmt.Errorf("%w: unterminated identifier", ErrMessageIDNotFound))
		}
		id = rest[:end]
	} else {
		id = rest
		if i := strings.IndexAny(id, " \r\n"); i >= 0 {
			id = id[:i]
		}
	}
	if id == "" {
		return "", responseErr(op, ErrMessageIDNotFound)
	}
	return id, nil
}
