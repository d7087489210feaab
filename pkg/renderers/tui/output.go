package tui

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/goliatone/go-calcform/pkg/model"
)

func serialize(format OutputFormat, fields []model.Field, data model.CollectedData) ([]byte, error) {
	switch format {
	case OutputFormatFormURLEncoded:
		values := url.Values{}
		for _, field := range fields {
			values.Set(field.Name, data.String(field.Name))
		}
		return []byte(values.Encode()), nil
	case OutputFormatPrettyText:
		var b strings.Builder
		for _, field := range fields {
			fmt.Fprintf(&b, "%s=%s\n", field.Name, data.String(field.Name))
		}
		return []byte(b.String()), nil
	default:
		return json.Marshal(data)
	}
}
