package resolver

import (
	"encoding/json"
	"net/url"
	"strings"
	"testing"
)

func TestBuildRequestEmbedsNameVerbatim(t *testing.T) {
	r, err := NewMastResolver(Config{})
	if err != nil {
		t.Fatal(err)
	}

	payload, err := r.buildRequest("KQ UMa")
	if err != nil {
		t.Fatal(err)
	}

	s := string(payload)
	for _, want := range []string{`"input":"KQ UMa"`, `"format":"json"`, `"service":"Mast.Name.Lookup"`} {
		if !strings.Contains(s, want) {
			t.Errorf("payload %s does not contain %s", s, want)
		}
	}

	var back resolutionRequest
	if err := json.Unmarshal(payload, &back); err != nil {
		t.Fatalf("payload does not decode: %v", err)
	}
	if back.Params.Input != "KQ UMa" || back.Params.Format != "json" || back.Service != "Mast.Name.Lookup" {
		t.Fatalf("decoded request = %+v", back)
	}
}

func TestEncodeRequestIsFormSafe(t *testing.T) {
	r, err := NewMastResolver(Config{})
	if err != nil {
		t.Fatal(err)
	}

	body, err := r.encodeRequest("AT 2018cow & friends")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(body, "request=") {
		t.Fatalf("body %q missing request= prefix", body)
	}
	if strings.ContainsAny(strings.TrimPrefix(body, "request="), " &{}\"") {
		t.Fatalf("body %q has unescaped characters", body)
	}

	form, err := url.ParseQuery(body)
	if err != nil {
		t.Fatal(err)
	}
	var back resolutionRequest
	if err := json.Unmarshal([]byte(form.Get("request")), &back); err != nil {
		t.Fatal(err)
	}
	if back.Params.Input != "AT 2018cow & friends" {
		t.Fatalf("input = %q", back.Params.Input)
	}
}
