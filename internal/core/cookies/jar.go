package cookies

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"os"
	"sort"
	"strings"
	"sync"
)

// Jar is the shared cookie store used for credentialed requests. It
// implements http.CookieJar and remembers the hosts and cookie paths it
// has seen so the contents can be listed and persisted.
type Jar struct {
	mu    sync.RWMutex
	jar   http.CookieJar
	hosts map[string]*site
}

// site is what the jar knows about one host: the scheme it was reached
// over and every cookie path stored for it.
type site struct {
	scheme string
	paths  map[string]struct{}
}

func (s *site) url(host, path string) *url.URL {
	return &url.URL{Scheme: s.scheme, Host: host, Path: path}
}

// sortedPaths returns the paths shortest first.
func (s *site) sortedPaths() []string {
	paths := make([]string, 0, len(s.paths))
	for p := range s.paths {
		paths = append(paths, p)
	}
	sort.Slice(paths, func(i, k int) bool {
		if len(paths[i]) != len(paths[k]) {
			return len(paths[i]) < len(paths[k])
		}
		return paths[i] < paths[k]
	})
	return paths
}

var _ http.CookieJar = (*Jar)(nil)

// New creates an empty jar.
func New() *Jar {
	return &Jar{
		jar:   newStdJar(),
		hosts: make(map[string]*site),
	}
}

func newStdJar() http.CookieJar {
	// cookiejar.New only fails on a bad PublicSuffixList, and we pass none.
	j, _ := cookiejar.New(nil)
	return j
}

// cookiePath is the path a cookie set from u is stored under: its own
// Path attribute, or the directory of the request path (RFC 6265 5.1.4).
func cookiePath(u *url.URL, c *http.Cookie) string {
	if strings.HasPrefix(c.Path, "/") {
		return c.Path
	}
	p := u.Path
	i := strings.LastIndex(p, "/")
	if i <= 0 {
		return "/"
	}
	return p[:i]
}

// Cookies returns the cookies to send to u.
func (j *Jar) Cookies(u *url.URL) []*http.Cookie {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return j.jar.Cookies(u)
}

// SetCookies stores cookies received from u.
func (j *Jar) SetCookies(u *url.URL, cookies []*http.Cookie) {
	if len(cookies) == 0 {
		return
	}
	j.mu.Lock()
	defer j.mu.Unlock()
	j.setLocked(u, cookies)
}

func (j *Jar) setLocked(u *url.URL, cookies []*http.Cookie) {
	s, ok := j.hosts[u.Host]
	if !ok {
		s = &site{paths: make(map[string]struct{})}
		j.hosts[u.Host] = s
	}
	// https wins so Secure cookies stay visible.
	if s.scheme != "https" {
		s.scheme = u.Scheme
	}
	for _, c := range cookies {
		s.paths[cookiePath(u, c)] = struct{}{}
	}
	j.jar.SetCookies(u, cookies)
}

// hostCookies returns the live cookies for host with Path filled in.
// The standard jar only hands back name and value, so each cookie is
// attributed to the shortest known path it is sent to. Caller holds mu.
func (j *Jar) hostCookies(host string, s *site) []*http.Cookie {
	var result []*http.Cookie
	seen := make(map[string]bool)
	for _, p := range s.sortedPaths() {
		for _, c := range j.jar.Cookies(s.url(host, p)) {
			key := c.Name + "=" + c.Value
			if seen[key] {
				continue
			}
			seen[key] = true
			result = append(result, &http.Cookie{Name: c.Name, Value: c.Value, Path: p})
		}
	}
	return result
}

// AllCookies returns the known cookies keyed by host, each with its Path
// set. Hosts whose cookies have all expired are left out.
func (j *Jar) AllCookies() map[string][]*http.Cookie {
	j.mu.RLock()
	defer j.mu.RUnlock()
	result := make(map[string][]*http.Cookie)
	for host, s := range j.hosts {
		if cs := j.hostCookies(host, s); len(cs) > 0 {
			result[host] = cs
		}
	}
	return result
}

// Hosts returns the known hosts in sorted order.
func (j *Jar) Hosts() []string {
	j.mu.RLock()
	defer j.mu.RUnlock()
	hosts := make([]string, 0, len(j.hosts))
	for h := range j.hosts {
		hosts = append(hosts, h)
	}
	sort.Strings(hosts)
	return hosts
}

// Clear drops every cookie.
func (j *Jar) Clear() {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.jar = newStdJar()
	j.hosts = make(map[string]*site)
}

// RemoveCookie drops every cookie called name for host, whatever its
// path. The standard jar has no delete, so the jar is rebuilt without it.
func (j *Jar) RemoveCookie(host, name string) {
	j.mu.Lock()
	defer j.mu.Unlock()

	if _, ok := j.hosts[host]; !ok {
		return
	}

	old := j.hosts
	snapshot := make(map[string][]*http.Cookie, len(old))
	for h, s := range old {
		snapshot[h] = j.hostCookies(h, s)
	}

	j.jar = newStdJar()
	j.hosts = make(map[string]*site)
	for h, cs := range snapshot {
		for _, c := range cs {
			if h == host && c.Name == name {
				continue
			}
			j.setLocked(old[h].url(h, c.Path), []*http.Cookie{c})
		}
	}
}

type persistedCookie struct {
	Name  string `json:"name"`
	Value string `json:"value"`
	Path  string `json:"path,omitempty"`
}

type persistedHost struct {
	URL     string            `json:"url"`
	Cookies []persistedCookie `json:"cookies"`
}

type persistedJar struct {
	Hosts map[string]persistedHost `json:"hosts"`
}

// SaveToFile writes the jar to path as JSON. Name, value and path
// survive; other attributes are not exposed by the standard jar.
func (j *Jar) SaveToFile(path string) error {
	j.mu.RLock()
	data := persistedJar{Hosts: make(map[string]persistedHost)}
	for host, s := range j.hosts {
		cs := j.hostCookies(host, s)
		if len(cs) == 0 {
			continue
		}
		ph := persistedHost{URL: s.url(host, "/").String()}
		for _, c := range cs {
			ph.Cookies = append(ph.Cookies, persistedCookie{Name: c.Name, Value: c.Value, Path: c.Path})
		}
		data.Hosts[host] = ph
	}
	j.mu.RUnlock()

	b, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding cookies: %w", err)
	}
	if err := os.WriteFile(path, b, 0600); err != nil {
		return fmt.Errorf("writing cookie file: %w", err)
	}
	return nil
}

// LoadFromFile merges cookies from path into the jar. A missing file is
// not an error. Cookies saved without a path are restored at "/".
func (j *Jar) LoadFromFile(path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading cookie file: %w", err)
	}

	var data persistedJar
	if err := json.Unmarshal(b, &data); err != nil {
		return fmt.Errorf("decoding cookie file: %w", err)
	}

	j.mu.Lock()
	defer j.mu.Unlock()
	for host, ph := range data.Hosts {
		u, err := url.Parse(ph.URL)
		if err != nil || u.Host == "" {
			u = &url.URL{Scheme: "https", Host: host, Path: "/"}
		}
		for _, c := range ph.Cookies {
			p := c.Path
			if !strings.HasPrefix(p, "/") {
				p = "/"
			}
			at := &url.URL{Scheme: u.Scheme, Host: u.Host, Path: p}
			j.setLocked(at, []*http.Cookie{{Name: c.Name, Value: c.Value, Path: p}})
		}
	}
	return nil
}
