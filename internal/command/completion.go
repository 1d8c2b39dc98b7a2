package command

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/staranto/smpctlgo/internal/meta"
)

const bashCompletionScript = `# bash completion for smpctl
# Fallback if bash-completion is not installed
if ! declare -F _get_comp_words_by_ref >/dev/null 2>&1; then
  _get_comp_words_by_ref() {
    cur=${COMP_WORDS[COMP_CWORD]}
    prev=${COMP_WORDS[COMP_CWORD-1]}
  }
fi

_smpctl()
{
    local cur prev cmd
    COMPREPLY=()
    _get_comp_words_by_ref -n : cur prev

    if [[ ${COMP_CWORD} -eq 1 ]]; then
        COMPREPLY=( $(compgen -W "bq cq iq serve completion --help --version" -- "$cur") )
        return 0
    fi

    cmd=${COMP_WORDS[1]}
  local common="--attrs -a --color -c --filter -f --output -o --sort -s --titles -t --tldr"

    case "$cmd" in
    bq)
      local opts="$common --appid --key --interval --format --diff"
            ;;
        cq)
      local opts="$common"
            ;;
        iq)
      local opts="$common --appid --currency --ttl --keep-symbols -k"
            ;;
        serve)
      local opts="--appid --currency --key --ttl --port -p --tldr"
            ;;
        completion)
            local opts="bash zsh"
            COMPREPLY=( $(compgen -W "$opts" -- "$cur") )
            return 0
            ;;
        *)
            local opts="$common"
            ;;
    esac

    if [[ "$prev" == "--output" || "$prev" == "-o" ]]; then
        COMPREPLY=( $(compgen -W "text json raw yaml" -- "$cur") )
        return 0
    fi

  if [[ "$cur" == -* ]]; then
    COMPREPLY=( $(compgen -W "$opts" -- "$cur") )
    return 0
  fi

  return 0
}

complete -F _smpctl smpctl
`

const zshCompletionScript = `#compdef smpctl

_smpctl() {
  local -a cmds
  cmds=(
    'bq:bulk price query'
    'cq:currency code query'
    'iq:item price query'
    'serve:serve prices over HTTP'
    'completion:generate shell completion script'
  )

  local -a common
  common=(
  '(-a --attrs)'{-a,--attrs}'[attributes to include]:attrs'
  '(-c --color)'{-c,--color}'[enable colored text]'
  '(-f --filter)'{-f,--filter}'[filters to apply]:filters'
  '(-o --output)'{-o,--output}'[output format]:format:(text json raw yaml)'
  '(-s --sort)'{-s,--sort}'[sort attributes]:attrs'
  '(-t --titles)'{-t,--titles}'[show titles]'
  '--tldr[show tldr page]'
  )

  if (( CURRENT == 2 )); then
    _describe -t commands 'smpctl commands' cmds
    return
  fi

  local curcontext="$curcontext" state line
  case $words[2] in
    bq)
      _arguments -C \
        $common \
        '--appid[Steam application id]:appid' \
        '--key[aggregate provider API key]:key' \
        '--interval[minimum time between refetches]:interval' \
        '--format[aggregate payload format]:format:(json)' \
        '--diff[show what the refresh changed]'
      ;;
    cq)
      _arguments -C $common
      ;;
    iq)
      _arguments -C \
        $common \
        '--appid[Steam application id]:appid' \
        '--currency[ECurrencyCode id]:currency' \
        '--ttl[cache freshness window]:ttl' \
        '(-k --keep-symbols)'{-k,--keep-symbols}'[keep currency-formatted strings]' \
        '*:item name:'
      ;;
    serve)
      _arguments -C \
        '--appid[Steam application id]:appid' \
        '--currency[ECurrencyCode id]:currency' \
        '--key[aggregate provider API key]:key' \
        '--ttl[cache freshness window]:ttl' \
        '(-p --port)'{-p,--port}'[port to listen on]:port'
      ;;
    completion)
      _arguments '1: :((bash zsh))'
      ;;
    *)
      _arguments -C $common
      ;;
  esac
}

# If this file is sourced directly (not autoloaded via fpath), ensure compsys is initialized and register the completion
if ! typeset -f compdef >/dev/null 2>&1; then
  autoload -Uz compinit && compinit -i
fi
compdef _smpctl smpctl smpctlgo
`

func CompletionCommandAction(ctx context.Context, cmd *cli.Command) error {
	shell := ""
	if args := cmd.Args().Slice(); len(args) > 0 {
		shell = args[0]
	}
	switch shell {
	case "bash":
		fmt.Fprint(os.Stdout, bashCompletionScript)
	case "zsh":
		fmt.Fprint(os.Stdout, zshCompletionScript)
	default:
		// Try to detect from SHELL or print help
		sh := os.Getenv("SHELL")
		if strings.HasSuffix(sh, "zsh") {
			fmt.Fprint(os.Stdout, zshCompletionScript)
		} else if strings.HasSuffix(sh, "bash") {
			fmt.Fprint(os.Stdout, bashCompletionScript)
		} else {
			fmt.Fprintln(os.Stderr, "usage: smpctl completion [bash|zsh]")
			return nil
		}
	}
	return nil
}

func CompletionCommandBuilder(cmd *cli.Command, meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "completion",
		Usage:     "generate shell completion script",
		UsageText: "smpctl completion [bash|zsh]",
		Metadata: map[string]any{
			"meta": meta,
		},
		Action: CompletionCommandAction,
	}
}
