package client

import "github.com/zcached/go-zcached/resp"

// Request builders. A request is an Array whose first element names the
// verb, followed by the arguments encoded per the value rules: keys as
// strings, values via the generic encoder.

func commandPing() resp.Array {
	return resp.Array{resp.BulkString("PING")}
}

func commandFlush() resp.Array {
	return resp.Array{resp.BulkString("FLUSH")}
}

func commandDBSize() resp.Array {
	return resp.Array{resp.BulkString("DBSIZE")}
}

func commandSave() resp.Array {
	return resp.Array{resp.BulkString("SAVE")}
}

func commandLastSave() resp.Array {
	return resp.Array{resp.BulkString("LASTSAVE")}
}

func commandKeys() resp.Array {
	return resp.Array{resp.BulkString("KEYS")}
}

func commandGet(key string) resp.Array {
	return resp.Array{resp.BulkString("GET"), resp.BulkString(key)}
}

func commandMGet(keys ...string) resp.Array {
	cmd := make(resp.Array, 0, len(keys)+1)
	cmd = append(cmd, resp.BulkString("MGET"))
	for _, key := range keys {
		cmd = append(cmd, resp.BulkString(key))
	}
	return cmd
}

func commandSet(key string, value resp.Value) resp.Array {
	return resp.Array{resp.BulkString("SET"), resp.BulkString(key), value}
}

func commandMSet(pairs []resp.Entry) resp.Array {
	cmd := make(resp.Array, 0, 2*len(pairs)+1)
	cmd = append(cmd, resp.BulkString("MSET"))
	for _, pair := range pairs {
		cmd = append(cmd, pair.Key, pair.Value)
	}
	return cmd
}

func commandDelete(key string) resp.Array {
	return resp.Array{resp.BulkString("DELETE"), resp.BulkString(key)}
}
