package web

import "strings"

// RewriteRule rewrites a URL before fetching, keyed by host substring.
// Some origins still hand out http:// links that only resolve cleanly
// when fetched as https directly.
type RewriteRule struct {
	HostContains string
	Apply        func(url string) string
}

var defaultRewriteRules = []RewriteRule{
	{
		HostContains: "mp.weixin.qq.com",
		Apply: func(u string) string {
			return strings.Replace(u, "http://", "https://", 1)
		},
	},
}

// browserHeaders make the fetch look like an ordinary desktop browser.
// A bare Go user agent gets many article pages served as bot walls.
var browserHeaders = map[string]string{
	"User-Agent":      "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36",
	"Accept":          "text/html,application/xhtml+xml,application/xml;q=0.9,image/avif,image/webp,*/*;q=0.8",
	"Accept-Language": "zh-CN,zh;q=0.9,en;q=0.8",
}

// refererQuirks maps host substrings to extra headers for origins that
// reject requests lacking a plausible same-site referer.
var refererQuirks = map[string]map[string]string{
	"zhihu.com": {
		"Referer":        "https://www.zhihu.com/",
		"Sec-Fetch-Dest": "document",
		"Sec-Fetch-Mode": "navigate",
		"Sec-Fetch-Site": "same-origin",
		"Sec-Fetch-User": "?1",
	},
	"juejin.cn": {
		"Referer":        "https://juejin.cn/",
		"Sec-Fetch-Dest": "document",
		"Sec-Fetch-Mode": "navigate",
		"Sec-Fetch-Site": "same-origin",
		"Sec-Fetch-User": "?1",
	},
}

// knownErrorPhrases identify pages whose content is gone for good.
// Retrying cannot bring it back, so these fail immediately.
var knownErrorPhrases = []string{
	"该内容已被发布者删除",
	"此内容因违规无法查看",
	"此内容被投诉且经审核涉嫌侵权",
	"This content has been removed",
}

// placeholderPhrases identify client-rendered pages that returned only a
// loading shell. A later attempt may receive the real content.
var placeholderPhrases = []string{
	"加载中",
	"正在加载",
	"请稍候",
	"Loading...",
	"Please wait",
}
