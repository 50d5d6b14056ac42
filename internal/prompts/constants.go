// Package prompts contains the descriptions shown to MCP clients for each tool.
package prompts

const (
	// CurrentNotebookToolDoc is the description for the CurrentNotebook tool
	CurrentNotebookToolDoc = `Returns the path of the notebook the running Jupyter kernel belongs to.

The kernel is identified from its connection file and matched against the sessions reported by every notebook server advertised in the Jupyter runtime directory. Servers that cannot be reached are skipped. The path is relative to the root directory of the server that reported it.`

	// NextNotebookToolDoc is the description for the NextNotebook tool
	NextNotebookToolDoc = `Returns the notebook that follows the current one.

Notebooks are ordered by the integer their file name starts with, e.g. 3_intro.ipynb, 4_body.ipynb, 5_end.ipynb. Fails if the current notebook cannot be determined, has no leading number, or no notebook carries the next number.`

	// PreviousNotebookToolDoc is the description for the PreviousNotebook tool
	PreviousNotebookToolDoc = `Returns the notebook that precedes the current one, using the same numbering as NextNotebook.`

	// NotebookByNumberToolDoc is the description for the NotebookByNumber tool
	NotebookByNumberToolDoc = `Returns a notebook by its leading number.

Usage:
- number: the notebook whose file name starts with exactly this integer (leading zeros are ignored)
- prefix: the first notebook, by name, whose file name starts with this literal text
Provide exactly one of the two.`

	// ListNotebooksToolDoc is the description for the ListNotebooks tool
	ListNotebooksToolDoc = `Lists the numbered notebooks of the notebook directory as a JSON array of {path, number}, ordered by number and then by name.`

	// ListNotebookServersToolDoc is the description for the ListNotebookServers tool
	ListNotebookServersToolDoc = `Queries every notebook server advertised in the Jupyter runtime directory and returns, for each, its URL, whether it requires a token, how many sessions it reported, or why it was skipped. Tokens are never returned.`
)
