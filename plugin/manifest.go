package plugin

const manifestLuaFile = `-- Code generated by "{{ .Executable }} -manifest {{ .Host }}". DO NOT EDIT.

local M = {}

function M.register()
  vim.fn["remote#host#Register"]("{{ .Host }}", "x", function()
    return vim.fn.jobstart({ "{{ .Executable }}" }, { rpc = true })
  end)

  vim.fn["remote#host#RegisterPlugin"]("{{ .Host }}", "0", {
{{- range .Specs }}
    { type = "{{ .Type }}", name = "{{ .Name }}", sync = {{ if .Sync }}1{{ else }}0{{ end }}, opts = vim.empty_dict() },
{{- end }}
  })
end

return M
`
