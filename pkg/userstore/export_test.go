package userstore

// SetRewriteStall installs a hook that runs after the rewrite scan while the
// update lock is still held, letting tests wedge a writer mid-update.
func (s *Store) SetRewriteStall(fn func()) { s.rewriteStall = fn }
