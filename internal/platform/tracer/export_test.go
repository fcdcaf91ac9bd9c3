package tracer

var ExportToKeyValue = toKeyValue
