package cache

// NoopCache never stores anything, so every lookup goes upstream.
type NoopCache struct{}

func (NoopCache) Set(string, any) error {
	return nil
}

func (NoopCache) Get(string, any) (bool, error) {
	return false, nil
}
