package offload

import (
	"strings"
	"testing"
	"testing/fstest"

	"webworker.GO/page"
	"webworker.GO/scripts"
)

func TestPlugin_RenderHead(t *testing.T) {
	reg := scripts.New()
	r := page.New(reg, New(Options{Assets: testAssets()}))

	reg.Add("plain", "https://example.com/plain.js", nil, "", scripts.Args{})
	reg.Add("gtag", "https://example.com/gtag.js?id=G-1", nil, "", scripts.Args{Worker: true})
	reg.AddInlineScript("gtag", "gtag('js');", scripts.PositionAfter)
	reg.Enqueue("plain", "gtag")

	var head strings.Builder
	if err := r.RenderHead(&head); err != nil {
		t.Fatalf("RenderHead: %v", err)
	}
	want := `<meta name="generator" content="web-worker-offloading 0.2.1">` + "\n" +
		`<script id="web-worker-offloading-js-before">` + "\n" +
		`window.partytown = {...(window.partytown || {}), ...{"lib":"/wp-content/plugins/web-worker-offloading/build/"}};` + "\n" +
		"</script>\n" +
		`<script id="web-worker-offloading-js-after">` + "\n" +
		testSnippet + "\n" +
		"</script>\n" +
		`<script src="https://example.com/plain.js" id="plain-js"></script>` + "\n" +
		`<script type="text/partytown" src="https://example.com/gtag.js?id=G-1" id="gtag-js"></script>` + "\n" +
		`<script id="gtag-js-after" type="text/partytown">` + "\n" +
		"gtag('js');\n" +
		"</script>\n"
	if head.String() != want {
		t.Errorf("head =\n%s\nwant\n%s", head.String(), want)
	}
}

func TestPlugin_FooterScript(t *testing.T) {
	reg := scripts.New()
	r := page.New(reg, New(Options{Assets: testAssets()}))
	reg.Add("late", "https://example.com/late.js", nil, "", scripts.Args{InFooter: true, Worker: true})
	reg.Enqueue("late")

	var head, footer strings.Builder
	r.RenderHead(&head)
	r.RenderFooter(&footer)

	if !strings.Contains(head.String(), `id="web-worker-offloading-js-after"`) {
		t.Errorf("bootstrap not printed in head:\n%s", head.String())
	}
	if strings.Contains(head.String(), "late-js") {
		t.Errorf("footer script printed in head:\n%s", head.String())
	}
	if strings.Contains(footer.String(), "web-worker-offloading") {
		t.Errorf("bootstrap printed twice:\n%s", footer.String())
	}
	want := `<script type="text/partytown" src="https://example.com/late.js" id="late-js"></script>` + "\n"
	if footer.String() != want {
		t.Errorf("footer = %q, want %q", footer.String(), want)
	}
}

func TestPlugin_NoWorkerScripts(t *testing.T) {
	reg := scripts.New()
	r := page.New(reg, New(Options{Assets: testAssets()}))
	reg.Add("plain", "https://example.com/plain.js", nil, "", scripts.Args{})
	reg.Enqueue("plain")

	var head strings.Builder
	r.RenderHead(&head)
	if strings.Contains(head.String(), "partytown") {
		t.Errorf("bootstrap printed without offloaded scripts:\n%s", head.String())
	}
}

func TestPlugin_MissingAssetDisablesOffloading(t *testing.T) {
	reg := scripts.New()
	r := page.New(reg, New(Options{Assets: fstest.MapFS{}}))
	reg.Add("gtag", "https://example.com/gtag.js", nil, "", scripts.Args{Worker: true})
	reg.Enqueue("gtag")

	var head strings.Builder
	r.RenderHead(&head)
	want := `<meta name="generator" content="web-worker-offloading 0.2.1">` + "\n" +
		`<script src="https://example.com/gtag.js" id="gtag-js"></script>` + "\n"
	if head.String() != want {
		t.Errorf("head = %q, want %q", head.String(), want)
	}
}
