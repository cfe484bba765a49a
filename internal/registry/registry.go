// Package registry хранит соответствие внешнего ключа загруженного файла и пути к нему на диске.
//
// Реестр живёт только в памяти процесса: он создаётся пустым при старте, только растёт
// и теряется при завершении. Файлы на диске при этом сохраняются.
package registry

import "sync"

// Registry: потокобезопасная карта key -> path.
// Одна RWMutex на всю карту: читатели не блокируют друг друга, запись эксклюзивна.
type Registry struct {
	mu    sync.RWMutex
	paths map[string]string
}

// New создаёт пустой реестр.
func New() *Registry {
	return &Registry{paths: map[string]string{}}
}

// Insert безусловно записывает (или перезаписывает) путь для ключа.
func (r *Registry) Insert(key, path string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.paths[key] = path
}

// Lookup возвращает путь по ключу; ok == false, если ключ не регистрировался.
func (r *Registry) Lookup(key string) (path string, ok bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	path, ok = r.paths[key]
	return path, ok
}

// Len возвращает число зарегистрированных ключей.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.paths)
}

// Paths возвращает копию множества зарегистрированных путей.
func (r *Registry) Paths() map[string]struct{} {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[string]struct{}, len(r.paths))
	for _, p := range r.paths {
		out[p] = struct{}{}
	}
	return out
}
