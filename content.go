package wishheart

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
)

// ErrEmptySource is returned when a content source yields no wishes.
var ErrEmptySource = errors.New("content source returned no wishes")

// DefaultWishes is the built-in list. Index 0 is the focal text.
var DefaultWishes = []string{
	DefaultFocalText,
	"不再焦虑", "开开心心", "幸福每天", "阳光灿烂", "发财",
	"美丽", "青春", "活力", "心想事成", "好运连连",
	"万事胜意", "岁岁平安", "前程似锦", "平安喜乐", "光芒万丈",
	"拒绝内耗", "清醒独立",
	"平安", "喜乐", "暴富", "自由", "被爱", "好运", "健康",
	"坚定", "浪漫", "顺利", "开心", "漂亮", "自信", "独立",
	"清醒", "热烈", "美好", "上岸", "加薪", "瘦身", "脱单",
	"顺遂", "快乐", "好眠",
	"富有", "智慧", "优雅", "松弛", "幸运", "灿烂", "明媚",
	"好好吃饭", "想哭就哭", "想笑就笑", "做自己", "不被定义",
}

// FallbackWishes is substituted when a remote source fails.
var FallbackWishes = []string{
	"自由", "美丽", "做想做的事", "前程似锦",
	"乐观面对生活", "自信", "心想事成", "接受自己",
	"幸运", "被爱", "健康", "明媚", "坚强",
	"不为破事焦虑", "冰雪聪明", "勇敢做决定", "拥有想要的一切",
	"想哭就哭", "想笑就笑", "不内耗", "不被定义",
	"勇敢做自己", "不被拘束", "敢于尝试", "相信自己",
	"有野心", "好好睡觉", "好好吃饭", "幸福", "暴富",
	"清醒", "浪漫", "平安", "喜乐", "万事胜意",
}

// Source supplies the ordered wish texts. Element 0 is the focal text.
type Source interface {
	Wishes(ctx context.Context) ([]string, error)
}

// StaticSource is a fixed list.
type StaticSource []string

// Wishes returns a copy of the list.
func (s StaticSource) Wishes(context.Context) ([]string, error) {
	if len(s) == 0 {
		return nil, ErrEmptySource
	}
	return append([]string(nil), s...), nil
}

// FileSource reads one wish per line. Blank lines and lines starting with
// '#' are skipped.
type FileSource struct {
	Path string
}

// Wishes reads the file.
func (s FileSource) Wishes(context.Context) ([]string, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("read wishes: %w", err)
	}
	return ParseWishLines(data)
}

// ParseWishLines splits data into wishes, one per line.
func ParseWishLines(data []byte) ([]string, error) {
	var out []string
	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		out = append(out, line)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("scan wishes: %w", err)
	}
	if len(out) == 0 {
		return nil, ErrEmptySource
	}
	return out, nil
}

// HTTPSource fetches a JSON array of strings with a GET request.
type HTTPSource struct {
	URL    string
	Client *http.Client
	// Focal, when set, is prepended so the remote list never has to carry
	// the focal text itself.
	Focal string
}

// maxResponseBytes bounds the body read from a remote source.
const maxResponseBytes = 1 << 20

// Wishes performs the request.
func (s HTTPSource) Wishes(ctx context.Context) ([]string, error) {
	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("fetch wishes: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch wishes: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch wishes: %s", resp.Status)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("fetch wishes: %w", err)
	}
	var list []string
	if err := json.Unmarshal(body, &list); err != nil {
		return nil, fmt.Errorf("fetch wishes: decode: %w", err)
	}
	list = compact(list)
	if len(list) == 0 {
		return nil, ErrEmptySource
	}
	if s.Focal != "" {
		list = append([]string{s.Focal}, list...)
	}
	return list, nil
}

// compact drops blank entries.
func compact(list []string) []string {
	out := list[:0]
	for _, w := range list {
		if w = strings.TrimSpace(w); w != "" {
			out = append(out, w)
		}
	}
	return out
}

// fallbackSource substitutes a fixed list for any failure.
type fallbackSource struct {
	src      Source
	fallback []string
	onError  func(error)
}

// Fallback wraps src so that any error or empty result yields fallback
// instead. onError, if non-nil, observes the original error.
func Fallback(src Source, fallback []string, onError func(error)) Source {
	return fallbackSource{src: src, fallback: fallback, onError: onError}
}

func (f fallbackSource) Wishes(ctx context.Context) ([]string, error) {
	list, err := f.src.Wishes(ctx)
	if err == nil && len(list) == 0 {
		err = ErrEmptySource
	}
	if err != nil {
		if f.onError != nil {
			f.onError(err)
		}
		if len(f.fallback) == 0 {
			return []string{DefaultFocalText}, nil
		}
		return append([]string(nil), f.fallback...), nil
	}
	return list, nil
}

// SourceFor picks a source from command-line style options: url wins over
// path, and an empty pair means DefaultWishes. Remote and file failures fall
// back to FallbackWishes.
func SourceFor(path, url string, onError func(error)) Source {
	switch {
	case url != "":
		return Fallback(HTTPSource{URL: url, Focal: DefaultFocalText}, FallbackWishes, onError)
	case path != "":
		return Fallback(FileSource{Path: path}, FallbackWishes, onError)
	}
	return StaticSource(DefaultWishes)
}
