package pagination

import (
	"net/url"
	"testing"
)

func TestParseDefaults(t *testing.T) {
	params, err := Parse(url.Values{})
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if params.PageSize != DefaultPageSize {
		t.Fatalf("unexpected page size: %d", params.PageSize)
	}
	if params.PageToken != "" {
		t.Fatalf("unexpected token: %s", params.PageToken)
	}
}

func TestParseCapsPageSize(t *testing.T) {
	params, err := Parse(url.Values{"pageSize": []string{"500"}})
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if params.PageSize != MaxPageSize {
		t.Fatalf("unexpected page size: %d", params.PageSize)
	}
}

func TestParseRejectsInvalidPageSize(t *testing.T) {
	for _, raw := range []string{"abc", "-5", "0"} {
		if _, err := Parse(url.Values{"pageSize": []string{raw}}); err == nil {
			t.Fatalf("expected error for pageSize %q", raw)
		}
	}
}

func TestOffsetTokenRoundTrip(t *testing.T) {
	token := EncodeOffsetToken(120)
	if token == "" {
		t.Fatal("expected non-empty token")
	}
	offset, err := DecodeOffsetToken(token)
	if err != nil {
		t.Fatalf("DecodeOffsetToken returned error: %v", err)
	}
	if offset != 120 {
		t.Fatalf("unexpected offset: %d", offset)
	}
}

func TestDecodeOffsetTokenEmpty(t *testing.T) {
	offset, err := DecodeOffsetToken("")
	if err != nil {
		t.Fatalf("DecodeOffsetToken returned error: %v", err)
	}
	if offset != 0 {
		t.Fatalf("unexpected offset: %d", offset)
	}
}

func TestDecodeOffsetTokenGarbage(t *testing.T) {
	if _, err := DecodeOffsetToken("!!not-base64!!"); err == nil {
		t.Fatal("expected error for malformed token")
	}
}
