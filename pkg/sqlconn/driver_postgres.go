package sqlconn

import (
	_ "github.com/lib/pq"
)
