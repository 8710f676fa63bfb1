package describebasic

import "github.com/seitarof/gen-optics/optics"

type Person struct {
	Name   string
	Age    int
	Active bool
}

type Basket struct {
	Items  []int
	Scores map[string]int
	Window [4]int
	Owner  string
}

type Server struct {
	Backup *Person
	Note   optics.Option[string]
}

type Config struct {
	host string
	port int
}

func (c Config) Host() string { return c.host }

func (c Config) GetPort() int { return c.port }

func (c Config) WithHost(h string) Config { return Config{host: h, port: c.port} }

func (c Config) WithPort(p int) Config { return Config{host: c.host, port: p} }

type Counter struct {
	n int
}

func (c Counter) Count() int { return c.n }

func (c *Counter) SetCount(n int) { c.n = n }
