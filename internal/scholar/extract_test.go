// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package scholar

import (
	"errors"
	"reflect"
	"testing"
)

// --- Search page fixtures ---

const sampleSearchHTML = `<!DOCTYPE html><html><body>
<div id="gs_res_ccl">
  <div class="gs_r gs_or gs_scl">
    <div class="gs_ri">
      <h3 class="gs_rt">
        <a id="KlAV3lkL7NIJ" href="https://arxiv.org/abs/1706.03762">Attention is all you need</a>
      </h3>
      <div class="gs_a">A Vaswani, N Shazeer, N Parmar… - Advances in neural information processing systems, 2017 - proceedings.neurips.cc</div>
      <div class="gs_fl">
        <a href="/scholar?cites=2960712678066186980&amp;as_sdt=2005">Cited by 123456</a>
        <a href="/scholar?q=related:KlAV3lkL7NIJ:scholar.google.com/">Related articles</a>
      </div>
    </div>
  </div>
  <div class="gs_r gs_or gs_scl">
    <div class="gs_ri">
      <h3 class="gs_rt">
        <span class="gs_ctu"><span class="gs_ct1">[CITATION]</span></span> Deep learning
      </h3>
      <div class="gs_a">Y LeCun, Y Bengio, G Hinton - nature, 2015 - nature.com</div>
      <div class="gs_fl">
        <a href="/scholar?cites=5362332738201102290">Cited by 54321</a>
      </div>
    </div>
  </div>
</div>
<div id="gs_n"><center><table><tr>
  <td><a href="/scholar?start=10&amp;q=test"><b>Next</b></a></td>
</tr></table></center></div>
</body></html>`

const sampleSearchLastPageHTML = `<!DOCTYPE html><html><body>
<div id="gs_res_ccl">
  <div class="gs_ri">
    <h3 class="gs_rt"><a id="abc123" href="https://example.org/paper">Final entry</a></h3>
    <div class="gs_a">Z Zhou - 2021 - example.org</div>
    <div class="gs_fl"></div>
  </div>
</div>
</body></html>`

const emptySearchHTML = `<!DOCTYPE html><html><body>
<div id="gs_res_ccl">
  <div class="gs_r">Your search did not match any articles.</div>
</div>
</body></html>`

// --- searchExtractor ---

func TestExtractSearchPage(t *testing.T) {
	q := Query{FreeText: "test"}
	pr, err := ExtractPage([]byte(sampleSearchHTML), q)
	if err != nil {
		t.Fatalf("ExtractPage: %v", err)
	}
	if len(pr.Citations) != 2 {
		t.Fatalf("len(Citations) = %d, want 2", len(pr.Citations))
	}
	if !pr.HasNext {
		t.Error("HasNext = false, want true")
	}

	c0 := pr.Citations[0]
	if c0.Title != "Attention is all you need" {
		t.Errorf("Title = %q", c0.Title)
	}
	if c0.Link != "https://arxiv.org/abs/1706.03762" {
		t.Errorf("Link = %q", c0.Link)
	}
	if c0.CiteID != "KlAV3lkL7NIJ" {
		t.Errorf("CiteID = %q, want anchor id", c0.CiteID)
	}
	wantAuthors := []string{"A Vaswani", "N Shazeer", "N Parmar"}
	if !reflect.DeepEqual(c0.Authors, wantAuthors) {
		t.Errorf("Authors = %v, want %v", c0.Authors, wantAuthors)
	}
	if c0.Venue != "Advances in neural information processing systems" {
		t.Errorf("Venue = %q", c0.Venue)
	}
	if c0.Year != 2017 {
		t.Errorf("Year = %d, want 2017", c0.Year)
	}
	if c0.CitedBy != 123456 {
		t.Errorf("CitedBy = %d, want 123456", c0.CitedBy)
	}
	if c0.ClusterID != "2960712678066186980" {
		t.Errorf("ClusterID = %q", c0.ClusterID)
	}
	if c0.Source != "search" {
		t.Errorf("Source = %q, want search", c0.Source)
	}

	// Citation-only entry: no link or cite id, title without the tag.
	c1 := pr.Citations[1]
	if c1.Title != "Deep learning" {
		t.Errorf("citation-only Title = %q, want tag stripped", c1.Title)
	}
	if c1.Link != "" || c1.CiteID != "" {
		t.Errorf("citation-only entry has Link %q CiteID %q, want empty", c1.Link, c1.CiteID)
	}
	if c1.CitedBy != 54321 {
		t.Errorf("CitedBy = %d, want 54321", c1.CitedBy)
	}
}

func TestExtractSearchLastPage(t *testing.T) {
	pr, err := ExtractPage([]byte(sampleSearchLastPageHTML), Query{FreeText: "test"})
	if err != nil {
		t.Fatalf("ExtractPage: %v", err)
	}
	if len(pr.Citations) != 1 {
		t.Fatalf("len(Citations) = %d, want 1", len(pr.Citations))
	}
	if pr.HasNext {
		t.Error("HasNext = true without a Next link")
	}
}

func TestExtractSearchEmptyResults(t *testing.T) {
	pr, err := ExtractPage([]byte(emptySearchHTML), Query{FreeText: "qqqq"})
	if err != nil {
		t.Fatalf("ExtractPage: %v", err)
	}
	if len(pr.Citations) != 0 {
		t.Errorf("len(Citations) = %d, want 0", len(pr.Citations))
	}
	if pr.HasNext {
		t.Error("HasNext = true for an empty page")
	}
}

func TestExtractSearchStructureChanged(t *testing.T) {
	unrecognized := `<!DOCTYPE html><html><body><div id="something-else">hello</div></body></html>`
	_, err := ExtractPage([]byte(unrecognized), Query{FreeText: "test"})
	if !errors.Is(err, ErrStructureChanged) {
		t.Fatalf("error = %v, want ErrStructureChanged", err)
	}
}

// Entries whose title cannot be recovered are dropped rather than
// emitted with an empty Title.
func TestExtractSearchSkipsTitlelessEntries(t *testing.T) {
	withBlank := `<!DOCTYPE html><html><body>
<div id="gs_res_ccl">
  <div class="gs_ri">
    <h3 class="gs_rt"><span>[HTML]</span></h3>
    <div class="gs_a">A Nobody - 2020</div>
  </div>
  <div class="gs_ri">
    <h3 class="gs_rt"><a id="x1" href="https://example.org">Real paper</a></h3>
    <div class="gs_a">B Somebody - 2021</div>
  </div>
</div>
</body></html>`
	pr, err := ExtractPage([]byte(withBlank), Query{FreeText: "test"})
	if err != nil {
		t.Fatalf("ExtractPage: %v", err)
	}
	if len(pr.Citations) != 1 {
		t.Fatalf("len(Citations) = %d, want 1", len(pr.Citations))
	}
	for _, c := range pr.Citations {
		if c.Title == "" {
			t.Error("extracted citation with empty title")
		}
	}
}

func TestExtractSearchIdempotent(t *testing.T) {
	q := Query{FreeText: "test"}
	first, err := ExtractPage([]byte(sampleSearchHTML), q)
	if err != nil {
		t.Fatalf("ExtractPage: %v", err)
	}
	again, err := ExtractPage([]byte(sampleSearchHTML), q)
	if err != nil {
		t.Fatalf("ExtractPage: %v", err)
	}
	if !reflect.DeepEqual(first, again) {
		t.Error("extraction is not idempotent")
	}
}

// --- Profile page fixtures ---

const sampleProfileHTML = `<!DOCTYPE html><html><body>
<table id="gsc_a_t"><tbody id="gsc_a_b">
  <tr class="gsc_a_tr">
    <td class="gsc_a_t">
      <a href="/citations?view_op=view_citation&amp;citation_for_view=AAA:111" class="gsc_a_at">Generative adversarial nets</a>
      <div class="gs_gray">I Goodfellow, J Pouget-Abadie, M Mirza</div>
      <div class="gs_gray">Advances in neural information processing systems 27</div>
    </td>
    <td class="gsc_a_c"><a href="#" class="gsc_a_ac">87654</a></td>
    <td class="gsc_a_y"><span class="gsc_a_h">2014</span></td>
  </tr>
  <tr class="gsc_a_tr">
    <td class="gsc_a_t">
      <a href="/citations?view_op=view_citation&amp;citation_for_view=AAA:222" class="gsc_a_at">Explaining and harnessing adversarial examples</a>
      <div class="gs_gray">I Goodfellow, J Shlens, C Szegedy</div>
      <div class="gs_gray">arXiv preprint arXiv:1412.6572, 2014</div>
    </td>
    <td class="gsc_a_c"><a href="#" class="gsc_a_ac"></a></td>
    <td class="gsc_a_y"><span class="gsc_a_h">2015</span></td>
  </tr>
</tbody></table>
</body></html>`

const endOfProfileHTML = `<!DOCTYPE html><html><body>
<table id="gsc_a_t"><tbody id="gsc_a_b">
  <tr><td class="gsc_a_e" colspan="3">There are no articles in this profile.</td></tr>
</tbody></table>
</body></html>`

// --- profileExtractor ---

func TestExtractProfilePage(t *testing.T) {
	q := Query{AuthorID: "AAA", PageSize: 20}
	pr, err := ExtractPage([]byte(sampleProfileHTML), q)
	if err != nil {
		t.Fatalf("ExtractPage: %v", err)
	}
	if len(pr.Citations) != 2 {
		t.Fatalf("len(Citations) = %d, want 2", len(pr.Citations))
	}

	c0 := pr.Citations[0]
	if c0.Title != "Generative adversarial nets" {
		t.Errorf("Title = %q", c0.Title)
	}
	if c0.Link != "https://scholar.google.com/citations?view_op=view_citation&citation_for_view=AAA:111" {
		t.Errorf("Link = %q, want absolute URL", c0.Link)
	}
	wantAuthors := []string{"I Goodfellow", "J Pouget-Abadie", "M Mirza"}
	if !reflect.DeepEqual(c0.Authors, wantAuthors) {
		t.Errorf("Authors = %v, want %v", c0.Authors, wantAuthors)
	}
	if c0.Venue != "Advances in neural information processing systems 27" {
		t.Errorf("Venue = %q", c0.Venue)
	}
	// Year column wins over the venue line.
	if c0.Year != 2014 {
		t.Errorf("Year = %d, want 2014", c0.Year)
	}
	if c0.CitedBy != 87654 {
		t.Errorf("CitedBy = %d, want 87654", c0.CitedBy)
	}
	if c0.Source != "profile" {
		t.Errorf("Source = %q, want profile", c0.Source)
	}

	// Empty cited-by cell degrades to zero.
	if pr.Citations[1].CitedBy != 0 {
		t.Errorf("CitedBy = %d, want 0 for empty cell", pr.Citations[1].CitedBy)
	}
}

// A full page means more entries plausibly exist; a short page means
// the listing is exhausted.
func TestExtractProfileHasNext(t *testing.T) {
	full := Query{AuthorID: "AAA", PageSize: 2}
	pr, err := ExtractPage([]byte(sampleProfileHTML), full)
	if err != nil {
		t.Fatalf("ExtractPage: %v", err)
	}
	if !pr.HasNext {
		t.Error("HasNext = false for a full page")
	}

	short := Query{AuthorID: "AAA", PageSize: 20}
	pr, err = ExtractPage([]byte(sampleProfileHTML), short)
	if err != nil {
		t.Fatalf("ExtractPage: %v", err)
	}
	if pr.HasNext {
		t.Error("HasNext = true for a short page")
	}
}

func TestExtractProfileEndMarker(t *testing.T) {
	pr, err := ExtractPage([]byte(endOfProfileHTML), Query{AuthorID: "AAA"})
	if err != nil {
		t.Fatalf("ExtractPage: %v", err)
	}
	if len(pr.Citations) != 0 {
		t.Errorf("len(Citations) = %d, want 0 past the end marker", len(pr.Citations))
	}
	if pr.HasNext {
		t.Error("HasNext = true past the end marker")
	}
}

func TestExtractProfileStructureChanged(t *testing.T) {
	_, err := ExtractPage([]byte(`<html><body><p>nope</p></body></html>`), Query{AuthorID: "AAA"})
	if !errors.Is(err, ErrStructureChanged) {
		t.Fatalf("error = %v, want ErrStructureChanged", err)
	}
}

// --- extractorFor ---

func TestExtractorFor(t *testing.T) {
	if name := extractorFor(Query{FreeText: "x"}).Name(); name != "search" {
		t.Errorf("extractor = %q, want search", name)
	}
	if name := extractorFor(Query{AuthorID: "x"}).Name(); name != "profile" {
		t.Errorf("extractor = %q, want profile", name)
	}
}

// --- helpers ---

func TestParseCitedBy(t *testing.T) {
	tests := []struct {
		text   string
		want   int
		wantOK bool
	}{
		{"Cited by 42", 42, true},
		{"Cited by 123456", 123456, true},
		{"Related articles", 0, false},
		{"Cited by many", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		got, ok := parseCitedBy(tt.text)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("parseCitedBy(%q) = (%d, %v), want (%d, %v)", tt.text, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestQueryParam(t *testing.T) {
	if got := queryParam("/scholar?cites=123&hl=en", "cites"); got != "123" {
		t.Errorf("queryParam = %q, want 123", got)
	}
	if got := queryParam("/scholar?hl=en", "cites"); got != "" {
		t.Errorf("queryParam = %q, want empty", got)
	}
	if got := queryParam("://bad", "cites"); got != "" {
		t.Errorf("queryParam = %q, want empty for unparsable href", got)
	}
}
